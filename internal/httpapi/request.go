package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hangwa-be/internal/order"
	"hangwa-be/internal/payment"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

var kst = time.FixedZone("KST", 9*60*60)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid order id", errBadRequest)
	}
	return id, nil
}

// parseDate accepts "2006-01-02" (read as a KST calendar day) or RFC 3339.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, kst); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", errBadRequest, s)
	}
	return &t, nil
}

// dateRange reads from/to query parameters. "to" is inclusive for the caller
// and becomes an exclusive bound one day later.
func dateRange(r *http.Request) (from, to *time.Time, err error) {
	q := r.URL.Query()
	if from, err = parseDate(q.Get("from")); err != nil {
		return nil, nil, err
	}
	if to, err = parseDate(q.Get("to")); err != nil {
		return nil, nil, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	return from, to, nil
}

func orderQuery(r *http.Request) (*order.Filter, *order.Sort, error) {
	q := r.URL.Query()
	f := &order.Filter{RemoteOnly: q.Get("remote") == "true"}

	if v := q.Get("status"); v != "" && v != "all" {
		s := order.Status(v)
		if !s.Valid() {
			return nil, nil, order.ErrInvalidStatus
		}
		f.Status = &s
	}
	if v := q.Get("paymentStatus"); v != "" && v != "all" {
		s := payment.Status(v)
		if !s.Valid() {
			return nil, nil, payment.ErrInvalidStatus
		}
		f.PaymentStatus = &s
	}
	if v := strings.TrimSpace(q.Get("search")); v != "" {
		f.Search = &v
	}

	var err error
	if f.DateFrom, f.DateTo, err = dateRange(r); err != nil {
		return nil, nil, err
	}

	if f.Limit, err = optionalInt32(q.Get("limit")); err != nil {
		return nil, nil, err
	}
	if f.Page, err = optionalInt32(q.Get("page")); err != nil {
		return nil, nil, err
	}

	var sort *order.Sort
	if v := q.Get("sort"); v != "" {
		sort = &order.Sort{
			Field:     order.SortField(v),
			Direction: order.SortDirection(strings.ToUpper(q.Get("direction"))),
		}
	}

	return f, sort, nil
}

func optionalInt32(s string) (*int32, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number %q", errBadRequest, s)
	}
	v := int32(n)
	return &v, nil
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", errBadRequest, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
