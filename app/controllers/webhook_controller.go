package controllers

import (
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
)

// maxWebhookBody caps inbound webhook payloads at 1 MiB.
const maxWebhookBody = 1 << 20

// WebhookController receives database-change notifications and forwards
// them to the frontend as page revalidations.
type WebhookController struct {
	revalidate *services.RevalidateService
}

func NewWebhookController(revalidate *services.RevalidateService) *WebhookController {
	return &WebhookController{revalidate: revalidate}
}

// secretOK accepts the shared secret from either the header or the query
// string. An empty configured secret rejects everything.
func secretOK(r *http.Request, want string) bool {
	if want == "" {
		return false
	}
	got := r.Header.Get("X-Webhook-Secret")
	if got == "" {
		got = r.URL.Query().Get("secret")
	}
	return got == want
}

// DBChange handles a change notification shaped like
// {"table":"products","type":"UPDATE",...}. Only the table matters: it is
// mapped to the affected pages and each one is revalidated.
func (c *WebhookController) DBChange(w http.ResponseWriter, r *http.Request) {
	if !secretOK(r, config.WebhookSecret()) {
		response.Unauthorized(w)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "unreadable body")
		return
	}
	table := gjson.GetBytes(body, "table").String()
	changeType := gjson.GetBytes(body, "type").String()
	if table == "" {
		response.Error(w, http.StatusBadRequest, "table is required")
		return
	}

	logger.Info("webhook: database change", "table", table, "type", changeType)

	outcomes, err := c.revalidate.Table(r.Context(), table)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"success":     true,
		"table":       table,
		"revalidated": outcomes,
	})
}

// Revalidate lets an operator force specific pages, or a whole table's
// pages, through the same fan-out the webhook uses.
func (c *WebhookController) Revalidate(w http.ResponseWriter, r *http.Request) {
	if !secretOK(r, config.RevalidateSecret()) {
		response.Unauthorized(w)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var paths []string
	if p := r.URL.Query().Get("path"); p != "" {
		paths = append(paths, p)
	}
	for _, p := range gjson.GetBytes(body, "paths").Array() {
		if s := p.String(); s != "" {
			paths = append(paths, s)
		}
	}
	if len(paths) == 0 {
		if table := gjson.GetBytes(body, "table").String(); table != "" {
			paths = services.PathsFor(table)
		}
	}
	if len(paths) == 0 {
		response.Error(w, http.StatusBadRequest, "path, paths or table is required")
		return
	}

	outcomes, err := c.revalidate.Paths(r.Context(), paths)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"success":     true,
		"revalidated": outcomes,
	})
}
