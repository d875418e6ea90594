package resp_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/marrowdb/marrow/internal/resp"
)

func TestDecoder_ReadInteger(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"positive", ":1000\r\n", 1000, false},
		{"positive with plus", ":+1230\r\n", 1230, false},
		{"negative", ":-15\r\n", -15, false},
		{"zero", ":0\r\n", 0, false},
		{"invalid ending", ":1000\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))
			val, err := d.Read()

			if tt.wantErr {
				var protoErr *resp.ProtocolError
				if err == nil || !errors.As(err, &protoErr) {
					t.Fatalf("Read() expected protocol error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Read() unexpected error %v", err)
			}
			if val.Type != resp.TypeInteger {
				t.Fatalf("Read() type = %v, want %v", val.Type, resp.TypeInteger)
			}
			if val.Integer != tt.want {
				t.Errorf("Read() integer = %v, want %v", val.Integer, tt.want)
			}
		})
	}
}

func TestDecoder_ReadBulkString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		isNull bool
	}{
		{"normal", "$5\r\nhello\r\n", "hello", false},
		{"empty", "$0\r\n\r\n", "", false},
		{"null", "$-1\r\n", "", true},
		{"binary safe", "$3\r\n\x00\r\n\r\n", "\x00\r\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))
			val, err := d.Read()
			if err != nil {
				t.Fatalf("Read() unexpected error %v", err)
			}
			if val.IsNull != tt.isNull {
				t.Fatalf("Read() IsNull = %v, want %v", val.IsNull, tt.isNull)
			}
			if !tt.isNull && string(val.String) != tt.want {
				t.Errorf("Read() string = %q, want %q", val.String, tt.want)
			}
		})
	}
}

func TestDecoder_ReadArray(t *testing.T) {
	input := "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"
	d := resp.NewDecoder(strings.NewReader(input))

	val, err := d.Read()
	if err != nil {
		t.Fatalf("Read() unexpected error %v", err)
	}
	if val.Type != resp.TypeArray || len(val.Array) != 2 {
		t.Fatalf("Read() = %+v, want a 2-element array", val)
	}
	if string(val.Array[0].String) != "foo" || string(val.Array[1].String) != "bar" {
		t.Errorf("Read() array = %+v", val.Array)
	}
}

func TestDecoder_NullArray(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("*-1\r\n"))
	val, err := d.Read()
	if err != nil {
		t.Fatalf("Read() unexpected error %v", err)
	}
	if val.Type != resp.TypeArray || !val.IsNull {
		t.Fatalf("Read() = %+v, want null array", val)
	}
}

func TestDecoder_ProtocolErrors(t *testing.T) {
	tests := []string{
		"@unknown\r\n",
		"$abc\r\nhello\r\n",
		"$-5\r\n",
		"*abc\r\n",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(input))
			_, err := d.Read()

			var protoErr *resp.ProtocolError
			if !errors.As(err, &protoErr) {
				t.Errorf("Read(%q) expected protocol error, got %v", input, err)
			}
		})
	}
}

func TestDecoder_OversizeBulkRejected(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("$536870913\r\n"))
	_, err := d.Read()

	var protoErr *resp.ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("Read() expected protocol error for oversize bulk, got %v", err)
	}
}

func TestDecoder_IncompleteFrameErrors(t *testing.T) {
	// A reader that only ever serves a truncated chunk simulates a peer
	// that disconnected mid-frame; the decoder must return an error
	// rather than panicking or looping.
	d := resp.NewDecoder(strings.NewReader("$5\r\nhel"))
	_, err := d.Read()
	if err == nil {
		t.Fatal("Read() expected an error on a truncated bulk body")
	}
}
