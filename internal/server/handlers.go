package server

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const (
	// DocxContentType is the media type of refined résumés
	DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// RefinedFilename is suggested to clients downloading a refined résumé
	RefinedFilename = "refined_resume.docx"

	// defaultUploadName is used when the client omits a filename
	defaultUploadName = "upload"
	// multipartMemory is the part of a multipart body kept in memory
	multipartMemory = 8 << 20
)

// upload is a parsed multipart scoring or refinement request
type upload struct {
	data           []byte
	filename       string
	jobDescription string
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScore scores an uploaded résumé against an optional job description
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	report, err := s.engine.Score(r.Context(), up.data, up.filename, up.jobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	if s.reportValidator != nil {
		if err := s.reportValidator.ValidateValue(report); err != nil {
			s.logger.Warn("score report violates schema",
				zap.String("request_id", RequestID(r.Context())),
				zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleRefine returns the refined résumé as a DOCX attachment
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	doc, err := s.engine.Refine(up.data, up.filename, up.jobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", DocxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+RefinedFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		s.logger.Warn("failed to write refined document", zap.Error(err))
	}
}

// readUpload parses the multipart fields "file" and "job_description".
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	if r.ContentLength > s.maxUploadBytes {
		return nil, &ErrPayloadTooLarge{Limit: s.maxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrPayloadTooLarge{Limit: s.maxUploadBytes}
		}
		return nil, &ErrValidation{Field: "body", Message: "expected multipart/form-data"}
	}
	// parts over multipartMemory are spooled to temp files
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: "is required"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: "could not be read"}
	}

	filename := header.Filename
	if filename == "" {
		filename = defaultUploadName
	}

	return &upload{
		data:           data,
		filename:       filename,
		jobDescription: r.FormValue("job_description"),
	}, nil
}
