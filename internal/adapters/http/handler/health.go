package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
)

const readinessTimeout = 2 * time.Second

// Pinger は依存先の疎通確認を行います。
type Pinger interface {
	Ping(ctx context.Context) error
}

type statusResponse struct {
	Status string `json:"status"`
}

// Healthz はプロセスの生存確認に応答します。
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Readyz はデータベースへ疎通できる場合のみ 200 を返します。
func Readyz(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logging.FromContext(r.Context(), logger).Warn("readiness check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	}
}
