package workload_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/blockprof/workload"
)

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"checksum", "copy", "scale"}, workload.Names())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{1, 2, 3, 4}, 256*8)

	tcs := map[string]struct {
		name      string
		wantBytes uint64
		wantErr   bool
	}{
		"checksum": {name: "checksum", wantBytes: uint64(len(data))},
		"copy":     {name: "copy", wantBytes: uint64(len(data))},
		"scale":    {name: "scale", wantBytes: uint64(len(data))},
		"unknown":  {name: "compress", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			op, err := workload.Lookup(tc.name)
			if tc.wantErr {
				require.ErrorIs(t, err, workload.ErrUnknownWorkload)
				assert.Nil(t, op)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBytes, op(data))
		})
	}
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), workload.Checksum(nil))
	assert.Equal(t, uint64(6), workload.Checksum([]byte{1, 2, 3}))
	assert.Equal(t, uint64(255*4), workload.Checksum([]byte{255, 255, 255, 255}))
}

func TestImage(t *testing.T) {
	t.Parallel()

	row := 256 * 4

	assert.Nil(t, workload.Image(make([]byte, row-1)))

	img := workload.Image(make([]byte, row*3+10))
	require.NotNil(t, img)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	assert.Len(t, img.Pix, row*3)
}

func TestScaleShortInput(t *testing.T) {
	t.Parallel()

	assert.Zero(t, workload.Scale([]byte("tiny")))
	assert.Equal(t, uint64(256*4), workload.Scale(make([]byte, 256*4)))
}
