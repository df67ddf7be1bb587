package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"nutrilens/config"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
		want                 qrcode.RecoveryLevel
	}{
		{"Low error correction", "L", qrcode.Low},
		{"Medium error correction", "M", qrcode.Medium},
		{"High error correction", "q", qrcode.High},
		{"Highest error correction", "H", qrcode.Highest},
		{"Default error correction", "invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(256, tt.errorCorrectionLevel, "https://nutrilens.app").(*qrcodeService)
			assert.Equal(t, tt.want, svc.errorCorrectionLevel)
		})
	}
}

func TestQRCodeService_GenerateProductQR(t *testing.T) {
	svc := NewQRCodeService(128, "M", "https://nutrilens.app/")

	pngBytes, err := svc.GenerateProductQR(1001)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestQRCodeService_ProductURL(t *testing.T) {
	svc := NewQRCodeService(0, "", "https://nutrilens.app/").(*qrcodeService)

	assert.Equal(t, "https://nutrilens.app/product/42", svc.ProductURL(42))
	assert.Equal(t, defaultSize, svc.size)
}

func TestNew_Defaults(t *testing.T) {
	svc := New(&config.Config{}).(*qrcodeService)

	assert.Equal(t, defaultSize, svc.size)
	assert.Equal(t, qrcode.Medium, svc.errorCorrectionLevel)
	assert.Equal(t, defaultBaseURL+"/product/7", svc.ProductURL(7))
}
