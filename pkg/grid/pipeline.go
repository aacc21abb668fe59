package grid

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Stringify renders a field value for filtering and display. It never fails:
// nil becomes "" and floats use their shortest exact form (95, 88.5).
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// Filter returns the records whose fields contain every active needle,
// compared under Unicode case folding. With no active needles the input
// slice is returned as is.
func Filter[R Record](records []R, filters Filters) []R {
	active := filters.Active()
	if len(active) == 0 {
		return records
	}

	fold := cases.Fold()
	needles := make(map[string]string, len(active))
	for key, needle := range active {
		needles[key] = fold.String(needle)
	}

	out := make([]R, 0, len(records))
	for _, r := range records {
		if matches(r, needles, fold) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, needles map[string]string, fold cases.Caser) bool {
	for key, needle := range needles {
		if !strings.Contains(fold.String(Stringify(r.Field(key))), needle) {
			return false
		}
	}
	return true
}

// Order returns a stably sorted copy of records. A nil sort (or one without
// a key) returns an unsorted copy.
func Order[R Record](records []R, sort *Sort) []R {
	out := slices.Clone(records)
	if sort == nil || sort.Key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		c := Compare(a.Field(sort.Key), b.Field(sort.Key))
		if sort.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

// Compare orders two field values. Numbers compare numerically and strings
// lexicographically. Across kinds, nil sorts first, then numbers, then every
// other value by its Stringify form.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNil:
		return 0
	case rankNumber:
		ai, aInt := asInt(a)
		bi, bInt := asInt(b)
		if aInt && bInt {
			return cmp.Compare(ai, bi)
		}
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return cmp.Compare(af, bf)
	default:
		return strings.Compare(Stringify(a), Stringify(b))
	}
}

const (
	rankNil = iota
	rankNumber
	rankOther
)

func rank(v any) int {
	if v == nil {
		return rankNil
	}
	if _, ok := asFloat(v); ok {
		return rankNumber
	}
	return rankOther
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case uint32:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	default:
		return 0, false
	}
}

// PageCount is ceil(n / size). It is 0 for an empty set.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns records[(page-1)*size : page*size], clipped to the slice.
func Paginate[R any](records []R, page, size int) []R {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(records) {
		return nil
	}
	end := min(start+size, len(records))
	return records[start:end]
}

// RowKey returns the stable key of a row: its non-zero "id" field, or the row
// index when it has none.
func RowKey(r Record, index int) string {
	if id := Stringify(r.Field("id")); id != "" && id != "0" {
		return id
	}
	return strconv.Itoa(index)
}
