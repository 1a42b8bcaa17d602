package orchestrator_test

import (
	"context"
	"testing"

	gferrors "github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/hooks"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	mock_orchestrator "github.com/cperrin88/geofetch/pkg/orchestrator/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetectCallback(t *testing.T) {
	callbackEnv := map[string]string{
		orchestrator.EnvDescriptorFile:    "/data/dc.yml",
		orchestrator.EnvAreaName:          "new-zealand",
		orchestrator.EnvMinZoom:           "0",
		orchestrator.EnvMaxZoom:           "7",
		orchestrator.EnvDescriptorVersion: "2.3",
	}
	args := []string{"2089b05ecca3d829", "1", "/data/new-zealand-latest.osm.pbf"}

	t.Run("callback mode", func(t *testing.T) {
		cb, err := orchestrator.DetectCallback(args, env(callbackEnv))
		require.NoError(t, err)
		require.NotNil(t, cb)
		assert.Equal(t, "2089b05ecca3d829", cb.GID)
		assert.Equal(t, "/data/new-zealand-latest.osm.pbf", cb.FilePath)
		assert.Equal(t, orchestrator.DescriptorRequest{
			Path: "/data/dc.yml", AreaName: "new-zealand", MinZoom: 0, MaxZoom: 7, Version: "2.3",
		}, cb.Descriptor)
	})

	t.Run("no descriptor variable", func(t *testing.T) {
		cb, err := orchestrator.DetectCallback(args, env(nil))
		require.NoError(t, err)
		assert.Nil(t, cb)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		cb, err := orchestrator.DetectCallback([]string{"planet", "--dry-run"}, env(callbackEnv))
		require.NoError(t, err)
		assert.Nil(t, cb)
	})

	t.Run("bad zoom", func(t *testing.T) {
		bad := map[string]string{
			orchestrator.EnvDescriptorFile: "/data/dc.yml",
			orchestrator.EnvMinZoom:        "zero",
			orchestrator.EnvMaxZoom:        "7",
		}
		_, err := orchestrator.DetectCallback(args, env(bad))
		assert.ErrorIs(t, err, gferrors.ErrInvalidZoom)
	})
}

func TestComplete(t *testing.T) {
	cb := &orchestrator.Callback{
		GID:       "gid",
		FileCount: "1",
		FilePath:  "/data/new-zealand-latest.osm.pbf",
		Descriptor: orchestrator.DescriptorRequest{
			Path: "/data/dc.yml", AreaName: "nz", MinZoom: 0, MaxZoom: 7, Version: "2.3",
		},
	}

	t.Run("writes descriptor and runs script", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		extractor := mock_orchestrator.NewMockDescriptorExtractor(ctrl)
		extractor.EXPECT().Extract(gomock.Any(), cb.FilePath, metadata.Options{
			AreaName: "nz", MinZoom: 0, MaxZoom: 7, Version: "2.3", Output: "/data/dc.yml",
		}).Return(&metadata.Descriptor{}, nil)

		scripts := hooks.NewHookManager()
		require.NoError(t, scripts.AddHook(hooks.Hook{
			Type: hooks.PostDownload,
			Content: `
				err := ""
				if descriptorPath != "/data/dc.yml" || areaName != "nz" {
					err = "unexpected context"
				}`,
		}))

		var phases []string
		o := orchestrator.New(nil, nil, extractor, scripts, orchestrator.Hooks{
			OnEvent: func(e orchestrator.Event) { phases = append(phases, e.Phase) },
		})

		require.NoError(t, o.Complete(context.Background(), cb))
		assert.Equal(t, []string{"descriptor", "done"}, phases)
	})

	t.Run("extraction failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		extractor := mock_orchestrator.NewMockDescriptorExtractor(ctrl)
		extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, gferrors.ErrExtraction)

		o := orchestrator.New(nil, nil, extractor, nil, orchestrator.Hooks{})

		assert.ErrorIs(t, o.Complete(context.Background(), cb), gferrors.ErrExtraction)
	})

	t.Run("script failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		extractor := mock_orchestrator.NewMockDescriptorExtractor(ctrl)
		extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return(&metadata.Descriptor{}, nil)

		scripts := hooks.NewHookManager()
		require.NoError(t, scripts.AddHook(hooks.Hook{Type: hooks.PostDownload, Content: `err := "upload failed"`}))
		o := orchestrator.New(nil, nil, extractor, scripts, orchestrator.Hooks{})

		assert.ErrorIs(t, o.Complete(context.Background(), cb), gferrors.ErrHookScript)
	})
}
