package server

import (
	"context"
	"net/http"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/pkg/httpx/reply"
)

type fortuneService interface {
	Draw(ctx context.Context) (entity.Fortune, error)
}

type FortuneServer struct {
	fortuneService fortuneService
}

func NewFortuneServer(fortuneService fortuneService) FortuneServer {
	return FortuneServer{
		fortuneService: fortuneService,
	}
}

// postV1Fortune всегда отвечает 200: неудачное открытие считается обычным
// результат с outcome=failed, ошибка уже залогирована сервисом.
func (s FortuneServer) postV1Fortune(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	fortune, _ := s.fortuneService.Draw(ctx) //nolint:errcheck

	reply.JSON(ctx, w, http.StatusOK, newRESTFortune(fortune))

	return nil
}
