package structmap_test

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/structmap-go/structmap"
	"github.com/structmap-go/structmap/enum"
)

type Severity int

const (
	SeverityLow Severity = iota
	SeverityHigh
)

func init() {
	enum.Register(map[string]Severity{
		"LOW":  SeverityLow,
		"HIGH": SeverityHigh,
	})
}

type Alert struct {
	Title    string    `map:""`
	Severity Severity  `map:""`
	RaisedAt time.Time `map:""`
	Assignee *string   `map:""`
}

// Example demonstrates binding a parsed JSON mapping onto a struct.
func Example() {
	source := map[string]any{
		"title":     "disk almost full",
		"severity":  "HIGH",
		"raised_at": "2021-03-14T15:09:26Z",
		"assignee":  nil,
	}

	var alert Alert
	if err := structmap.Decode(source, &alert); err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Println(alert.Title)
	fmt.Println(alert.Severity == SeverityHigh)
	fmt.Println(alert.Assignee == nil)

	// Output:
	// disk almost full
	// true
	// true
}

// ExampleDecodeJSON demonstrates the convenience JSON entry point and the
// camelCase key fallback.
func ExampleDecodeJSON() {
	type Invoice struct {
		OrderID string `map:""`
		DueDays int    `map:",default=30"`
	}

	var inv Invoice
	if err := structmap.DecodeJSON([]byte(`{"orderId": "A-1001"}`), &inv); err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Println(inv.OrderID, inv.DueDays)

	// Output: A-1001 30
}

// ExampleDecode_errors demonstrates structured error inspection.
func ExampleDecode_errors() {
	var alert Alert
	err := structmap.Decode(map[string]any{"severity": "HIGH"}, &alert)

	var de *structmap.DecodeError
	if errors.As(err, &de) {
		fmt.Println(de.Field, errors.Is(err, structmap.ErrKeyNotFound))
	}

	// Output: Title true
}

// ExampleWithNamedConverter demonstrates a per-field custom converter.
func ExampleWithNamedConverter() {
	registry := structmap.NewRegistry(
		structmap.WithNamedConverter("csv", func(value any) (any, error) {
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("want string, got %T", value)
			}
			return strings.Split(s, ","), nil
		}),
	)

	type Query struct {
		Tags []string `map:",converter=csv"`
	}

	decoder := structmap.NewDecoder(structmap.WithRegistry(registry))

	var q Query
	if err := decoder.Decode(map[string]any{"tags": "a,b,c"}, &q); err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Println(q.Tags)

	// Output: [a b c]
}
