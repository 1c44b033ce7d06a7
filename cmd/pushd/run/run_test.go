// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/pushd"
	"github.com/matt-FFFFFF/pushd/internal/config"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_getURL(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantErr   error
		wantBytes []byte
	}{
		{
			name:    "empty url returns error",
			url:     "",
			wantErr: ErrGetPlanFile,
		},
		{
			name:    "getter fails",
			url:     "git::http://notexist//file.yaml",
			wantErr: ErrGetPlanFile,
		},
		{
			name:    "remote url without subdirectory",
			url:     "git::http://notexist/file.yaml",
			wantErr: ErrGetPlanFile,
		},
		{
			name:      "local file",
			url:       "./testdata/test.txt",
			wantBytes: []byte("this is a test file\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			bytes, err := getURL(ctx, tc.url)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, bytes)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBytes, bytes)
		})
	}
}

func Test_getURL_QueryFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/gone", 0o755))

	d := pushd.NewMemDirer(fs, "/gone")
	require.NoError(t, fs.RemoveAll("/gone"))

	stubs := gostub.Stub(&pushd.DefaultDirer, pushd.Direr(d))
	defer stubs.Reset()

	_, err := getURL(context.Background(), "./testdata/test.txt")
	require.ErrorIs(t, err, ErrGetPlanFile)
	require.ErrorIs(t, err, pushd.ErrQueryDirectory)
}

func Test_getURL_Plan(t *testing.T) {
	data, err := getURL(context.Background(), "testdata/plan.yaml")
	require.NoError(t, err)

	plan, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "fixture", plan.Name)
	assert.Len(t, plan.Steps, 1)
}

func Test_splitFileNameFromGetterURL(t *testing.T) {
	testCases := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//dir/plan.yaml?ref=v1.0.0",
			wantURL:  "git::https://github.com/org/repo//dir?ref=v1.0.0",
			wantFile: "plan.yaml",
		},
		{
			url:      "git::https://github.com/org/repo//plan.yaml",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "plan.yaml",
		},
		{
			url:      "git::https://github.com/org/repo//a/b/plan.yaml",
			wantURL:  "git::https://github.com/org/repo//a/b",
			wantFile: "plan.yaml",
		},
		{
			url: "https://example.com/plan.yaml",
		},
		{
			url: "git::https://github.com/org/repo//dir/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tc.url)
			assert.Equal(t, tc.wantURL, gotURL)
			assert.Equal(t, tc.wantFile, gotFile)
		})
	}
}
