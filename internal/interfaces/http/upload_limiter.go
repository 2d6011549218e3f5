package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
)

// limiterIdleTTL tiempo sin actividad tras el cual se descarta el limitador de un espacio.
const limiterIdleTTL = 10 * time.Minute

type workspaceLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UploadLimiter limita la frecuencia de importaciones por espacio de trabajo.
type UploadLimiter struct {
	mu       sync.Mutex
	limiters map[string]*workspaceLimiter
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

// NewUploadLimiter construye el limitador. rps <= 0 desactiva el límite.
func NewUploadLimiter(rps float64, burst int) *UploadLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UploadLimiter{
		limiters: make(map[string]*workspaceLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consume un token del espacio de trabajo.
func (l *UploadLimiter) Allow(workspaceID string) bool {
	if l.rps <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, wl := range l.limiters {
		if now.Sub(wl.lastSeen) > limiterIdleTTL {
			delete(l.limiters, id)
		}
	}
	wl, ok := l.limiters[workspaceID]
	if !ok {
		wl = &workspaceLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[workspaceID] = wl
	}
	wl.lastSeen = now
	return wl.limiter.AllowN(now, 1)
}

// LimitUploads responde 429 cuando el espacio de trabajo supera su cuota de
// importaciones. Debe usarse después de AuthMiddleware.
func LimitUploads(l *UploadLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID := GetWorkspaceID(c)
		if workspaceID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "workspace_id no encontrado en el token"})
		}
		if !l.Allow(workspaceID) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas importaciones, intente más tarde",
			})
		}
		return c.Next()
	}
}
