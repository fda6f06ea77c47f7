package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/absingh09/mydocuments/internal/common"
	"github.com/absingh09/mydocuments/internal/server/documents"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "My Documents API is running.",
	})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
	}

	res, err := s.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return c.JSON(http.StatusBadRequest, errorResponse{Detail: "An account with this email already exists."})
		}
		return s.errorJSON(c, err)
	}

	s.logger.Info(c.Request().Context(), "registered", "email", res.User.Email)

	return c.JSON(http.StatusCreated, tokenResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		UserName:    res.User.Name,
		UserEmail:   res.User.Email,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
	}

	res, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Incorrect email or password."})
		}
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		UserName:    res.User.Name,
		UserEmail:   res.User.Email,
	})
}

func (s *Server) handleUpload(c echo.Context) error {
	var req documentCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
	}

	identity := currentIdentity(c)

	doc, err := s.documents.Upload(c.Request().Context(), identity.UserID, &documents.Document{
		Name:     req.Name,
		Issuer:   req.Issuer,
		Date:     req.Date,
		FileType: req.FileType,
		Filename: req.Filename,
		Data:     req.Data,
	})
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, toDocumentResponse(doc, false))
}

func (s *Server) handleList(c echo.Context) error {
	identity := currentIdentity(c)

	docs, err := s.documents.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return s.errorJSON(c, err)
	}

	out := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc, false))
	}

	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGet(c echo.Context) error {
	identity := currentIdentity(c)

	doc, err := s.documents.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, toDocumentResponse(doc, true))
}

func (s *Server) handleUpdate(c echo.Context) error {
	var req documentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
	}

	identity := currentIdentity(c)

	doc, err := s.documents.Update(c.Request().Context(), identity.UserID, c.Param("id"), &documents.Patch{
		Name:   req.Name,
		Issuer: req.Issuer,
		Date:   req.Date,
	})
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, toDocumentResponse(doc, false))
}

func (s *Server) handleDelete(c echo.Context) error {
	identity := currentIdentity(c)

	if err := s.documents.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return s.errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// errorJSON maps sentinel errors to HTTP responses. Anything unrecognized
// is a server error; its details stay in the log, not the response.
func (s *Server) errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: validationDetail(err)})
	case errors.Is(err, common.ErrorInvalidID):
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid document ID"})
	case errors.Is(err, common.ErrorNoFields):
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "No fields to update"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Detail: "Document not found"})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Unauthorized"})
	default:
		s.logger.Error(c.Request().Context(), "request failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}

// validationDetail strips the sentinel prefix, leaving the field detail.
func validationDetail(err error) string {
	msg := err.Error()
	if detail, found := strings.CutPrefix(msg, common.ErrorValidation.Error()+": "); found {
		return detail
	}
	return msg
}
