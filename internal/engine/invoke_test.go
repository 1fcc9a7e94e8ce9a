package engine

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestOverlayEnv_AddsPythonPath(t *testing.T) {
	env := overlayEnv([]string{"HOME=/home/u", "LANG=C"}, "/opt/bridge")

	found := ""
	for _, kv := range env {
		if strings.HasPrefix(kv, "PYTHONPATH=") {
			found = kv
		}
	}
	if found != "PYTHONPATH=/opt/bridge" {
		t.Errorf("expected PYTHONPATH=/opt/bridge, got %q", found)
	}
	if len(env) != 3 {
		t.Errorf("expected 3 entries, got %d", len(env))
	}
}

func TestOverlayEnv_PrependsToInherited(t *testing.T) {
	env := overlayEnv([]string{"PYTHONPATH=/site/pkgs", "HOME=/home/u"}, "/opt/bridge")

	want := "PYTHONPATH=/opt/bridge" + string(os.PathListSeparator) + "/site/pkgs"
	found := ""
	count := 0
	for _, kv := range env {
		if strings.HasPrefix(kv, "PYTHONPATH=") {
			found = kv
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one PYTHONPATH entry, got %d", count)
	}
	if found != want {
		t.Errorf("expected %q, got %q", want, found)
	}
}

func TestBuildArgv_FileFormat(t *testing.T) {
	req := Request{
		Text: "hello", Voice: "af_heart", Lang: "a",
		Speed: 1.5, Device: "auto", Format: "wav", OutputPath: "/tmp/o.wav",
	}
	argv := buildArgv(req)

	want := []string{
		"--text", "hello", "--voice", "af_heart", "--lang", "a",
		"--speed", "1.5", "--device", "auto", "--format", "wav",
		"--output", "/tmp/o.wav",
	}
	if len(argv) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(argv), argv)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("arg %d: got %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestBuildArgv_InlineFormatOmitsOutput(t *testing.T) {
	req := Request{Text: "hi", Voice: "af_heart", Lang: "a", Speed: 1, Device: "cpu", Format: "ogg_base64"}
	argv := buildArgv(req)

	for _, a := range argv {
		if a == "--output" {
			t.Fatal("--output must not be passed for inline formats")
		}
	}
}

func TestInvoker_Run_LaunchFailure(t *testing.T) {
	iv := &Invoker{
		BridgeRoot: t.TempDir(),
		Module:     "whatever.cli",
		Python:     "/definitely/not/a/python-xyz",
		Timeout:    5 * time.Second,
	}

	_, _, err := iv.Run(context.Background(), nil)
	if !errors.Is(err, ErrLaunchFailure) {
		t.Fatalf("expected ErrLaunchFailure, got %v", err)
	}
}

func TestInvoker_Run_CapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("依赖 /bin/sh")
	}
	// sh -m -c '<脚本>'：用 shell 顶替解释器，模拟引擎输出
	iv := &Invoker{
		BridgeRoot: t.TempDir(),
		Python:     "/bin/sh",
		Module:     "-c",
		Timeout:    5 * time.Second,
	}

	stdout, stderr, err := iv.Run(context.Background(),
		[]string{`echo banner >&2; echo '{"ok":true,"result":{"device_used":"cpu"}}'`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, `"device_used":"cpu"`) {
		t.Errorf("stdout not captured: %q", stdout)
	}
	if !strings.Contains(stderr, "banner") {
		t.Errorf("stderr not captured: %q", stderr)
	}

	raw, err := Decode(stdout, stderr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.DeviceUsed != "cpu" {
		t.Errorf("expected cpu, got %q", raw.DeviceUsed)
	}
}

func TestInvoker_Run_NonZeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("依赖 /bin/sh")
	}
	// 引擎以非零码退出时仍会打印 ok:false 行，调用层不报错
	iv := &Invoker{
		BridgeRoot: t.TempDir(),
		Python:     "/bin/sh",
		Module:     "-c",
		Timeout:    5 * time.Second,
	}

	stdout, _, err := iv.Run(context.Background(),
		[]string{`echo '{"ok":false,"error":"synthesis failed"}'; exit 1`})
	if err != nil {
		t.Fatalf("non-zero exit should not surface as invoke error, got %v", err)
	}

	_, err = Decode(stdout, "")
	if !errors.Is(err, ErrEngineFailure) {
		t.Fatalf("expected ErrEngineFailure from decoder, got %v", err)
	}
}

func TestInvoker_Run_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("依赖 /bin/sh")
	}
	iv := &Invoker{
		BridgeRoot: t.TempDir(),
		Python:     "/bin/sh",
		Module:     "-c",
		Timeout:    100 * time.Millisecond,
	}

	start := time.Now()
	_, _, err := iv.Run(context.Background(), []string{"exec sleep 10"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout did not terminate the process promptly: %s", elapsed)
	}
}
