package httpapi

import "github.com/absingh09/mydocuments/internal/server/documents"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
}

type documentCreateRequest struct {
	Name     string `json:"name"`
	Issuer   string `json:"issuer"`
	Date     string `json:"date"`
	FileType string `json:"file_type"`
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

type documentUpdateRequest struct {
	Name   *string `json:"name"`
	Issuer *string `json:"issuer"`
	Date   *string `json:"date"`
}

// documentResponse mirrors the stored record; Data is only populated on
// single-document fetch.
type documentResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Issuer     string  `json:"issuer"`
	Date       string  `json:"date"`
	FileType   string  `json:"file_type"`
	Filename   string  `json:"filename"`
	Data       *string `json:"data,omitempty"`
	UploadedAt string  `json:"uploaded_at"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func toDocumentResponse(doc *documents.Document, includeData bool) documentResponse {
	out := documentResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		Issuer:     doc.Issuer,
		Date:       doc.Date,
		FileType:   doc.FileType,
		Filename:   doc.Filename,
		UploadedAt: doc.UploadedAt,
	}
	if includeData {
		data := doc.Data
		out.Data = &data
	}
	return out
}
