package middleware

import (
	"net/http"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
)

// Maintenance returns 503 on storefront routes while MAINTENANCE_MODE is on.
// Admin and webhook groups are registered without this middleware and stay
// reachable.
func Maintenance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if config.MaintenanceMode() {
			response.Error(w, http.StatusServiceUnavailable, "Maintenance in progress")
			return
		}
		next.ServeHTTP(w, r)
	})
}
