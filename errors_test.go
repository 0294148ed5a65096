package photoviewer

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorIs(t *testing.T) {
	err := fmt.Errorf("loading: %w", &DecodeError{Kind: MalformedBuffer, Ext: "qoi"})

	assert.True(t, errors.Is(err, ErrMalformedBuffer))
	assert.False(t, errors.Is(err, ErrDecoding))
	assert.Equal(t, MalformedBuffer, KindOf(err))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
}

func TestDecodeErrorUnwrap(t *testing.T) {
	err := &DecodeError{Kind: UnreadableFile, Ext: "png", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, errors.Is(err, ErrUnreadableFile))
}

func TestDecodeErrorMessage(t *testing.T) {
	assert.Equal(t, "decode (none): unsupported format",
		(&DecodeError{Kind: UnsupportedFormat}).Error())
	assert.Equal(t, "decode jpg: decoding: boom",
		(&DecodeError{Kind: Decoding, Ext: "jpg", Err: errors.New("boom")}).Error())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
