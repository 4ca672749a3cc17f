package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mythsdao/myths-deploy/internal/usecase"
)

func TestPlainSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPlainSink(&buf)

	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "deploy", Current: 2, Total: 10, Message: "MythsDescriptor"})
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Message: "Waiting...", Spinner: true})
	sink.Info("Deploying MythsDescriptor...")
	sink.Warn("Invalid chain id. Expected 31337. Got: 1.")
	sink.Error("boom")

	assert.Equal(t, "[2/10] MythsDescriptor\n"+
		"Deploying MythsDescriptor...\n"+
		"Warning: Invalid chain id. Expected 31337. Got: 1.\n"+
		"Error: boom\n", buf.String())
}
