package server

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/jonathan/error-annotator/internal/scratch"
	"github.com/rs/zerolog"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// inputFileName is the name the upload is stored under inside a workspace.
const inputFileName = "input.txt"

// uploadForm is the decoded POST / body.
type uploadForm struct {
	File     *multipart.FileHeader `validate:"required"`
	OSChoice string                `validate:"required"`
}

type homeData struct {
	OSChoices []string
}

// handleHome renders the upload form.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.home.Execute(w, homeData{OSChoices: s.catalog.Identifiers()}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error rendering upload form")
	}
}

// handleUpload annotates the uploaded log against the chosen OS reference and
// returns the report as an attachment.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	form, err := s.parseUpload(r)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected upload")
		s.textError(w, err)
		return
	}

	refPath, ok := s.catalog.Primary(form.OSChoice)
	if !ok {
		logger.Warn().Str("os_choice", form.OSChoice).Msg("Invalid OS choice")
		s.textError(w, &ErrUnknownOS{OS: form.OSChoice})
		return
	}

	ws, err := scratch.New(s.cfg.ScratchDir, *logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create scratch workspace")
		s.textError(w, err)
		return
	}
	defer func() { _ = ws.Close() }()

	outputName, err := s.annotateUpload(r, ws, form, refPath)
	if err != nil {
		logger.Error().Err(err).Str("os_choice", form.OSChoice).Msg("Failed to process file")
		s.textError(w, err)
		return
	}

	s.sendDocument(w, r, ws.Path(outputName), outputName)
}

// parseUpload reads and validates the multipart form.
func (s *Server) parseUpload(r *http.Request) (*uploadForm, error) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, &ErrUploadTooLarge{Limit: tooLarge.Limit}
		case errors.Is(err, http.ErrNotMultipart):
			return nil, &ErrMissingField{Field: "input_file"}
		default:
			return nil, &ErrMalformedUpload{Cause: err}
		}
	}

	form := &uploadForm{}
	if values := r.MultipartForm.Value["os_choice"]; len(values) > 0 {
		form.OSChoice = values[0]
	}
	if files := r.MultipartForm.File["input_file"]; len(files) > 0 {
		form.File = files[0]
	}

	if err := s.validate.Struct(form); err != nil {
		field := "input_file"
		if form.File != nil {
			field = "os_choice"
		}
		return nil, &ErrMissingField{Field: field}
	}
	return form, nil
}

// annotateUpload stores the upload in ws, runs the annotator and returns the
// output file name.
func (s *Server) annotateUpload(r *http.Request, ws *scratch.Workspace, form *uploadForm, refPath string) (string, error) {
	src, err := form.File.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	inputPath, err := ws.Save(inputFileName, src)
	if err != nil {
		return "", err
	}

	refLines := s.extractor.Lines(refPath)

	outputName := fmt.Sprintf("%s - %s.docx", s.cfg.OutputPrefix, s.now().Format("2006-01-02"))
	if _, err := s.annotator.Annotate(r.Context(), inputPath, refLines, ws.Path(outputName)); err != nil {
		return "", err
	}
	return outputName, nil
}

// sendDocument streams the file at path as a .docx attachment called name.
func (s *Server) sendDocument(w http.ResponseWriter, r *http.Request, path, name string) {
	f, err := os.Open(path)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to open output document")
		s.textError(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to stat output document")
		s.textError(w, err)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// handleProcess is a liveness probe kept for existing clients.
func (s *Server) handleProcess(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "It's working!"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// textError writes the plain-text response for err.
func (s *Server) textError(w http.ResponseWriter, err error) {
	http.Error(w, clientMessage(err), HTTPStatus(err))
}
