package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"success", nil, false},
		{"shutdown during load", fmt.Errorf("load dataset: load data.csv: %w", context.Canceled), false},
		{"load timeout", fmt.Errorf("load dataset: %w", context.DeadlineExceeded), true},
		{"missing file", errors.New("load dataset: open data.csv: no such file"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loadFailure(tt.err))
		})
	}
}
