package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/astrocli/astro/core/logger"
)

// scriptRequest is the engine → script contract, written to the child's
// stdin as a single JSON object.
type scriptRequest struct {
	InputFiles   []string `json:"input_files"`
	ExtraArgs    []string `json:"extra_args"`
	OutputBuffer string   `json:"output_buffer"`
}

// scriptResponse is the script → engine contract, read from the file at
// output_buffer. Pointer fields distinguish absent from zero so the required
// validation can reject incomplete responses.
type scriptResponse struct {
	OutputFiles  *[]string `json:"output_files" validate:"required"`
	IsSuccess    *bool     `json:"is_success" validate:"required"`
	ErrorMessage *string   `json:"error_message"`
}

// ScriptInvoker runs user scripts through the structured data contract. The
// output buffer file is the only channel of truth for success and produced
// artifacts; the child's stdout and stderr are captured for the event log
// and never parsed.
type ScriptInvoker struct {
	// Fs is where output buffer files are created and read.
	Fs afero.Fs
	// Dir is the working directory for spawned scripts.
	Dir string
	// TempDir holds output buffers; empty means the OS temp directory.
	TempDir string
	// Interpreter is the argv prefix the script path is appended to.
	Interpreter []string
	// Log receives script diagnostics.
	Log *logger.SessionLogger

	validate *validator.Validate
	run      runner
}

// NewScriptInvoker creates the script strategy.
func NewScriptInvoker(fs afero.Fs, dir string, interpreter []string, log *logger.SessionLogger) *ScriptInvoker {
	return &ScriptInvoker{
		Fs:          fs,
		Dir:         dir,
		Interpreter: interpreter,
		Log:         log,
		validate:    validator.New(),
		run:         execRun,
	}
}

func (s *ScriptInvoker) Invoke(ctx context.Context, spec Spec) Result {
	bufferPath, err := s.createOutputBuffer()
	if err != nil {
		return failure(spec.InputFiles, fmt.Sprintf("%s: creating output buffer: %v", spec.Name, err))
	}
	defer s.Fs.Remove(bufferPath)

	request, err := json.Marshal(scriptRequest{
		InputFiles:   emptyIfNil(spec.InputFiles),
		ExtraArgs:    emptyIfNil(spec.ExtraArgs),
		OutputBuffer: bufferPath,
	})
	if err != nil {
		return failure(spec.InputFiles, fmt.Sprintf("%s: encoding request: %v", spec.Name, err))
	}

	argv := append(append([]string{}, s.Interpreter...), spec.Locator)
	out, err := s.run(ctx, s.Dir, request, argv)
	if err != nil {
		return failure(spec.InputFiles, fmt.Sprintf("%s: %v", spec.Name, err))
	}

	if s.Log != nil && (len(out.stdout) > 0 || len(out.stderr) > 0) {
		s.Log.Record(&logger.Entry{
			Event:    logger.EventScriptOutput,
			Command:  spec.Name,
			Kind:     KindScript.String(),
			ExitCode: out.exitCode,
			Stdout:   string(out.stdout),
			Stderr:   string(out.stderr),
		})
	}

	response, err := s.readResponse(bufferPath)
	if err != nil {
		return failure(spec.InputFiles, fmt.Sprintf("%s: %v", spec.Name, err))
	}

	if out.exitCode != 0 && *response.IsSuccess {
		// The script died after (or while) reporting success; trust the exit.
		msg := strings.TrimSpace(string(out.stderr))
		if msg == "" {
			msg = fmt.Sprintf("%s: exited with status %d", spec.Name, out.exitCode)
		}
		return failure(*response.OutputFiles, msg)
	}

	result := Result{
		OutputFiles: *response.OutputFiles,
		IsSuccess:   *response.IsSuccess,
	}
	if response.ErrorMessage != nil {
		result.ErrorMessage = *response.ErrorMessage
	}
	if !result.IsSuccess && result.ErrorMessage == "" {
		result.ErrorMessage = spec.Name + ": script reported failure"
	}
	return result
}

// createOutputBuffer allocates a uniquely named response file so concurrent
// branches never collide.
func (s *ScriptInvoker) createOutputBuffer() (string, error) {
	f, err := afero.TempFile(s.Fs, s.TempDir, "astro-buffer-*.json")
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()
	return path, nil
}

func (s *ScriptInvoker) readResponse(bufferPath string) (*scriptResponse, error) {
	raw, err := afero.ReadFile(s.Fs, bufferPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("script did not produce an output buffer")
	}
	if err != nil {
		return nil, fmt.Errorf("reading output buffer: %v", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("script wrote an empty output buffer")
	}

	var response scriptResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("invalid response JSON: %v", err)
	}
	if err := s.validate.Struct(&response); err != nil {
		return nil, fmt.Errorf("incomplete response: %v", err)
	}
	return &response, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
