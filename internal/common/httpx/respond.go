package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

const maxBodyBytes = 1 << 20

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem writes a simplified RFC 7807 body.
func WriteProblem(w http.ResponseWriter, code int, typ, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// DecodeJSON reads a single JSON object and rejects unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

type problem struct {
	code int
	typ  string
}

var problems = []struct {
	err error
	problem
}{
	{domain.ErrEmptyOrder, problem{http.StatusUnprocessableEntity, "empty_order"}},
	{domain.ErrMissingTableNumber, problem{http.StatusUnprocessableEntity, "missing_table_number"}},
	{domain.ErrMissingDeliveryInfo, problem{http.StatusUnprocessableEntity, "missing_delivery_info"}},
	{domain.ErrInvalidOrderType, problem{http.StatusBadRequest, "invalid_order_type"}},
	{domain.ErrInvalidQuantity, problem{http.StatusBadRequest, "invalid_quantity"}},
	{domain.ErrItemNotInCart, problem{http.StatusBadRequest, "item_not_in_cart"}},
	{domain.ErrInvalidProduct, problem{http.StatusBadRequest, "invalid_product"}},
	{domain.ErrInvalidTransition, problem{http.StatusUnprocessableEntity, "invalid_transition"}},
	{domain.ErrInvalidStatus, problem{http.StatusBadRequest, "invalid_status"}},
	{domain.ErrInvalidDate, problem{http.StatusBadRequest, "invalid_date"}},
	{domain.ErrInvalidRole, problem{http.StatusBadRequest, "invalid_role"}},
	{domain.ErrInvalidTime, problem{http.StatusBadRequest, "invalid_time"}},
	{domain.ErrOrderNotFound, problem{http.StatusNotFound, "not_found"}},
	{domain.ErrProductNotFound, problem{http.StatusNotFound, "not_found"}},
	{domain.ErrEmployeeNotFound, problem{http.StatusNotFound, "not_found"}},
	{domain.ErrReportNotFound, problem{http.StatusNotFound, "not_found"}},
	{domain.ErrStatusConflict, problem{http.StatusConflict, "status_conflict"}},
	{domain.ErrDuplicateSubmission, problem{http.StatusConflict, "duplicate_submission"}},
	{domain.ErrEmailTaken, problem{http.StatusConflict, "email_taken"}},
	{domain.ErrUnauthenticated, problem{http.StatusUnauthorized, "unauthenticated"}},
	{domain.ErrForbidden, problem{http.StatusForbidden, "forbidden"}},
	{domain.ErrQueueUnavailable, problem{http.StatusServiceUnavailable, "queue_unavailable"}},
}

// StatusFor maps a service error to its HTTP status and problem type.
func StatusFor(err error) (int, string) {
	for _, p := range problems {
		if errors.Is(err, p.err) {
			return p.code, p.typ
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// WriteError maps err to a problem response. Unknown errors are logged and
// returned with a generic detail.
func WriteError(w http.ResponseWriter, r *http.Request, lg *logger.Logger, action string, err error) {
	code, typ := StatusFor(err)
	if code == http.StatusInternalServerError {
		if lg != nil {
			lg.ErrorCtx(r.Context(), action, err, nil)
		}
		WriteProblem(w, code, typ, "internal error")
		return
	}
	WriteProblem(w, code, typ, rootMessage(err))
}

// rootMessage returns the sentinel message without wrapping prefixes.
func rootMessage(err error) string {
	for _, p := range problems {
		if errors.Is(err, p.err) {
			return p.err.Error()
		}
	}
	return err.Error()
}

func AtoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}
