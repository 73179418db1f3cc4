package glbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sb6-assets/internal/gpu"
)

func TestEveryFormatHasAnInternalFormat(t *testing.T) {
	for f := gpu.FormatR8; f <= gpu.FormatETC2RGBA8; f++ {
		_, ok := internalFormat(f)
		assert.True(t, ok, "%v", f)
	}
	_, ok := internalFormat(gpu.FormatNone)
	assert.False(t, ok)
}

func TestInternalFormatsMatchKTXCodes(t *testing.T) {
	// The values stored in KTX headers are the GL enums themselves.
	assert.Equal(t, uint32(0x8058), internalFormats[gpu.FormatRGBA8])
	assert.Equal(t, uint32(0x8815), internalFormats[gpu.FormatRGB32F])
	assert.Equal(t, uint32(0x83F0), internalFormats[gpu.FormatBC1RGB])
	assert.Equal(t, uint32(0x8E8C), internalFormats[gpu.FormatBC7])
}

func TestPixelFormat(t *testing.T) {
	f, ok := pixelFormat(gpu.OrderBGRA, false)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x80E1), f)

	f, ok = pixelFormat(gpu.OrderRGBA, true)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x8D99), f)

	_, ok = pixelFormat(gpu.OrderNone, false)
	assert.False(t, ok)
}

func TestTargetsAndTypes(t *testing.T) {
	for tg := gpu.Target1D; tg <= gpu.TargetCubeArray; tg++ {
		_, ok := textureTarget(tg)
		assert.True(t, ok, "%v", tg)
	}
	_, ok := textureTarget(gpu.TargetNone)
	assert.False(t, ok)

	for ct := gpu.TypeByte; ct <= gpu.TypeDouble; ct++ {
		_, ok := componentType(ct)
		assert.True(t, ok, "%v", ct)
	}
}
