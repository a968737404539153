package result

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMarshalSuccessUsesEntityKey(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	out, err := json.Marshal(OK("customer", item{Name: "A"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"customer":{"name":"A"},"success":true}` {
		t.Fatalf("got %s", out)
	}
}

func TestMarshalFailure(t *testing.T) {
	out, err := json.Marshal(Fail[int]("task", errors.New("boom")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"error":"boom","success":false}` {
		t.Fatalf("got %s", out)
	}
}

func TestDone(t *testing.T) {
	out, _ := json.Marshal(Done())
	if string(out) != `{"success":true}` {
		t.Fatalf("got %s", out)
	}
}
