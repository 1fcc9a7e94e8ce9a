package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode_IgnoresBannerLines(t *testing.T) {
	stdout := "warming up...\n" +
		`{"ok":true,"result":{"device_used":"cpu","used_fallback":true,"sample_rate":24000,"response_format":"wav","output_path":"/tmp/x.wav"}}` + "\n"

	raw, err := Decode(stdout, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.DeviceUsed != "cpu" {
		t.Errorf("expected device_used 'cpu', got %q", raw.DeviceUsed)
	}
	if !raw.UsedFallback {
		t.Error("expected used_fallback true")
	}
	if raw.SampleRate != 24000 {
		t.Errorf("expected sample_rate 24000, got %d", raw.SampleRate)
	}
	if raw.OutputPath != "/tmp/x.wav" {
		t.Errorf("expected output_path '/tmp/x.wav', got %q", raw.OutputPath)
	}
}

func TestDecode_TrailingNoiseAfterResult(t *testing.T) {
	// 结果行之后只有空白行，仍应取结果行
	stdout := `{"ok":true,"result":{"device_used":"mps"}}` + "\n\n   \n"

	raw, err := Decode(stdout, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.DeviceUsed != "mps" {
		t.Errorf("expected device_used 'mps', got %q", raw.DeviceUsed)
	}
}

func TestDecode_EmptyOutput(t *testing.T) {
	_, err := Decode("", "some stderr noise")
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
	if !strings.Contains(err.Error(), "some stderr noise") {
		t.Errorf("error should carry stderr for diagnostics, got %q", err.Error())
	}
}

func TestDecode_BlankLinesOnly(t *testing.T) {
	_, err := Decode("\n   \n\t\n", "")
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestDecode_MalformedLastLine(t *testing.T) {
	_, err := Decode("banner\nthis is not json\n", "")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
	if !strings.Contains(err.Error(), "this is not json") {
		t.Errorf("error should carry the offending line, got %q", err.Error())
	}
}

func TestDecode_EngineReportedFailure(t *testing.T) {
	_, err := Decode(`{"ok":false,"error":"Kokoro synthesis failed: boom"}`, "")
	if !errors.Is(err, ErrEngineFailure) {
		t.Fatalf("expected ErrEngineFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "Kokoro synthesis failed: boom") {
		t.Errorf("error should carry the engine message, got %q", err.Error())
	}
}

func TestDecode_EngineFailureWithoutMessage(t *testing.T) {
	_, err := Decode(`{"ok":false}`, "")
	if !errors.Is(err, ErrEngineFailure) {
		t.Fatalf("expected ErrEngineFailure, got %v", err)
	}
}

func TestDecode_OKWithoutResult(t *testing.T) {
	_, err := Decode(`{"ok":true}`, "")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}
