package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("INVALID_INPUT", "bad argument", map[string]any{"field": "n"})
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Equal(t, "bad argument", resp.Error.Message)
	assert.Equal(t, map[string]any{"field": "n"}, resp.Error.Details)
}

func TestOutputFormatter_YAMLResult(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "yaml",
		Writer: buf,
	}

	err := formatter.Result("overflow", &Outcome{
		Command:  "sigma",
		Status:   statusOverflow,
		Overflow: &OverflowDetail{At: 1, Partial: 127, Index: 2},
	})
	require.NoError(t, err)

	var resp struct {
		Status string  `yaml:"status"`
		Data   Outcome `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "overflow", resp.Status)
	assert.Equal(t, "sigma", resp.Data.Command)
	require.NotNil(t, resp.Data.Overflow)
	assert.Equal(t, 2, resp.Data.Overflow.Index)
	assert.Equal(t, 127, resp.Data.Overflow.Partial)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success("done"))
	assert.Equal(t, "done\n", buf.String())
}

func TestOutputFormatter_TextUsesTexter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	outcome := valueOutcome([][]uint8{{1}, {1, 1}})
	outcome.lines = []string{"1", "1 1"}
	require.NoError(t, formatter.Success(outcome))
	assert.Equal(t, "1\n1 1\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    out,
		ErrWriter: errOut,
	}

	err := formatter.Error("UNSUPPORTED_TYPE", "Unsupported numeric type \"f64\"", nil)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, "Error [UNSUPPORTED_TYPE]: Unsupported numeric type \"f64\"\n", errOut.String())
}

func TestOutputFormatter_VerboseDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, formatter.Error("INVALID_INPUT", "bad", map[string]any{"field": "n"}))
	assert.Contains(t, buf.String(), "Details: map[field:n]")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	formatter.VerboseLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	formatter.Verbose = true
	formatter.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", buf.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitOverflow, GetExitCode(NewExitError(ExitOverflow, "sigma overflowed")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "writing output", errors.New("closed"))))
	assert.Equal(t, ExitInvalidInput, GetExitCode(errors.New("unknown flag: --bogus")))
}

func TestExitError(t *testing.T) {
	cause := errors.New("closed pipe")
	err := WrapExitError(ExitFailure, "writing output", cause)
	assert.Equal(t, "writing output: closed pipe", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "plain", NewExitError(ExitOverflow, "plain").Error())
}
