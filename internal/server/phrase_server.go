package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/httpx/reply"
	"fortune_cookie/pkg/httpx/req"
	"fortune_cookie/pkg/rest"
)

const defaultPageSize = 100

type phraseService interface {
	List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error)
	Create(ctx context.Context, text string) (entity.Phrase, error)
	Update(ctx context.Context, id value.PhraseID, text string) error
	Delete(ctx context.Context, id value.PhraseID) error
}

type PhraseServer struct {
	phraseService phraseService
}

func NewPhraseServer(phraseService phraseService) PhraseServer {
	return PhraseServer{
		phraseService: phraseService,
	}
}

func (s PhraseServer) getV1Phrases(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	page, err := req.QueryInt(r, "page", 1)
	if err != nil {
		return fmt.Errorf("req.QueryInt(page): %w", err)
	}

	pageSize, err := req.QueryInt(r, "pageSize", defaultPageSize)
	if err != nil {
		return fmt.Errorf("req.QueryInt(pageSize): %w", err)
	}

	phrases, err := s.phraseService.List(ctx, page, pageSize)
	if err != nil {
		return fmt.Errorf("phraseService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPhrasePage(phrases, page, pageSize))

	return nil
}

func (s PhraseServer) postV1Phrase(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PhraseRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	phrase, err := s.phraseService.Create(ctx, *request.Text)
	if err != nil {
		return fmt.Errorf("phraseService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTPhrase(phrase))

	return nil
}

func (s PhraseServer) patchV1Phrase(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parsePhraseID(r)
	if err != nil {
		return err
	}

	var request rest.PhraseRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.phraseService.Update(ctx, id, *request.Text); err != nil {
		return fmt.Errorf("phraseService.Update: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPhrase(entity.Phrase{ID: id, Text: *request.Text}))

	return nil
}

func (s PhraseServer) deleteV1Phrase(w http.ResponseWriter, r *http.Request) error {
	id, err := parsePhraseID(r)
	if err != nil {
		return err
	}

	if err := s.phraseService.Delete(r.Context(), id); err != nil {
		return fmt.Errorf("phraseService.Delete: %w", err)
	}

	reply.OK(w)

	return nil
}

func parsePhraseID(r *http.Request) (value.PhraseID, error) {
	id, err := value.ParsePhraseID(chi.URLParam(r, "id"))
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidPhraseID, "invalid phrase id")
	}

	return id, nil
}
