package mcp

import (
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
)

const dateLayout = "2006-01-02"

// args reads tool arguments by key with a sticky first error, so a
// handler reads every field it declares and checks finish once. Each
// read marks its key consumed; finish rejects any leftover key, which
// is how unknown arguments fail. JSON numbers arrive as float64 and
// ids must be integral.
type args struct {
	raw  map[string]any
	read map[string]bool
	err  error
}

func newArgs(req mcp.CallToolRequest) *args {
	return &args{raw: req.GetArguments(), read: make(map[string]bool)}
}

func objArgs(raw map[string]any) *args {
	return &args{raw: raw, read: make(map[string]bool)}
}

// finish returns the first read error, or an error for any argument
// key no getter consumed. A JSON null reads as an absent value but its
// key still counts as known.
func (a *args) finish() error {
	if a.err != nil {
		return a.err
	}
	for key := range a.raw {
		if !a.read[key] {
			return fmt.Errorf("unknown argument %q: %w", key, apperr.ErrInvalidArgument)
		}
	}
	return nil
}

func (a *args) fail(format string, v ...any) {
	if a.err == nil {
		a.err = fmt.Errorf(format+": %w", append(v, apperr.ErrInvalidArgument)...)
	}
}

func (a *args) get(key string) (any, bool) {
	a.read[key] = true
	if a.err != nil {
		return nil, false
	}
	v, ok := a.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (a *args) str(key string) *string {
	v, ok := a.get(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		a.fail("%s must be a string", key)
		return nil
	}
	return &s
}

func (a *args) requireStr(key string) string {
	s := a.str(key)
	if s == nil {
		a.fail("%s is required", key)
		return ""
	}
	return *s
}

func (a *args) integer(key string) *int {
	v, ok := a.get(key)
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		a.fail("%s must be an integer", key)
		return nil
	}
	n := int(f)
	return &n
}

func (a *args) requireInt(key string) int {
	n := a.integer(key)
	if n == nil {
		a.fail("%s is required", key)
		return 0
	}
	return *n
}

func (a *args) id(key string) *int64 {
	n := a.integer(key)
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}

func (a *args) requireID(key string) int64 {
	v := a.id(key)
	if v == nil {
		a.fail("%s is required", key)
		return 0
	}
	return *v
}

func (a *args) boolean(key string) *bool {
	v, ok := a.get(key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		a.fail("%s must be a boolean", key)
		return nil
	}
	return &b
}

// timestamp parses an RFC3339 datetime. The layout demands an offset,
// so naive forms fail here rather than being guessed at.
func (a *args) timestamp(key string) *time.Time {
	s := a.str(key)
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		a.fail("%s %q must be an RFC3339 datetime with offset", key, *s)
		return nil
	}
	return &t
}

func (a *args) requireTimestamp(key string) time.Time {
	t := a.timestamp(key)
	if t == nil {
		a.fail("%s is required", key)
		return time.Time{}
	}
	return *t
}

func (a *args) date(key string) *time.Time {
	s := a.str(key)
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		a.fail("%s %q must be a YYYY-MM-DD date", key, *s)
		return nil
	}
	return &t
}

func (a *args) requireDate(key string) time.Time {
	t := a.date(key)
	if t == nil {
		a.fail("%s is required", key)
		return time.Time{}
	}
	return *t
}

// strs returns nil when the key is absent and an empty non-nil slice
// for an explicit empty array, preserving the update tri-state.
func (a *args) strs(key string) []string {
	v, ok := a.get(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		a.fail("%s must be an array of strings", key)
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			a.fail("%s must be an array of strings", key)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (a *args) idList(key string) []int64 {
	v, ok := a.get(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		a.fail("%s must be an array of ids", key)
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		f, ok := item.(float64)
		if !ok || f != math.Trunc(f) {
			a.fail("%s must be an array of ids", key)
			return nil
		}
		out = append(out, int64(f))
	}
	return out
}

func (a *args) object(key string) map[string]any {
	v, ok := a.get(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		a.fail("%s must be an object", key)
		return nil
	}
	return m
}

// strAs converts an optional string argument into an optional value of
// a string-kinded domain type.
func strAs[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// Domain-typed readers. Value-range checks stay with the domain
// validators; these only shape the argument.

func (a *args) privacy(key string) *domain.PrivacyLevel {
	return strAs[domain.PrivacyLevel](a.str(key))
}

func (a *args) entityType(key string) *domain.EntityType {
	return strAs[domain.EntityType](a.str(key))
}

func (a *args) recurrence(key string) *domain.RecurrenceConfig {
	m := a.object(key)
	if m == nil {
		return nil
	}
	sub := objArgs(m)
	cfg := &domain.RecurrenceConfig{
		Frequency:  domain.RecurrenceFrequency(sub.requireStr("frequency")),
		DayOfWeek:  sub.integer("day_of_week"),
		DayOfMonth: sub.integer("day_of_month"),
	}
	if err := sub.finish(); err != nil {
		if a.err == nil {
			a.err = fmt.Errorf("%s: %w", key, err)
		}
		return nil
	}
	return cfg
}
