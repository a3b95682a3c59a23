package dialog

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const DefaultMaxImageSize int64 = 10 << 20

const sniffLength = 512

// AttachmentLoader turns pasted or dropped content into image attachments.
// Anything that is not an image, or is larger than MaxSize, is rejected
// without an error.
type AttachmentLoader struct {
	FS      afero.Fs
	MaxSize int64
}

func NewAttachmentLoader(fs afero.Fs, maxSize int64) *AttachmentLoader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &AttachmentLoader{FS: fs, MaxSize: maxSize}
}

// FromBytes accepts raw bitmap data. The MIME type is sniffed from the data;
// declared is only used when sniffing is inconclusive but still an image type.
func (l *AttachmentLoader) FromBytes(data []byte, declared string) (ImageAttachment, bool) {
	if len(data) == 0 || int64(len(data)) > l.MaxSize {
		return ImageAttachment{}, false
	}

	mimeType, ok := imageType(data, declared)
	if !ok {
		return ImageAttachment{}, false
	}

	return ImageAttachment{
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, true
}

// FromBase64 accepts an already encoded payload, as sent by the browser.
func (l *AttachmentLoader) FromBase64(encoded string, declared string) (ImageAttachment, bool) {
	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > l.MaxSize+2 {
		return ImageAttachment{}, false
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ImageAttachment{}, false
	}

	return l.FromBytes(data, declared)
}

// FromDataURI accepts "data:image/png;base64,...".
func (l *AttachmentLoader) FromDataURI(uri string) (ImageAttachment, bool) {
	header, payload, ok := strings.Cut(strings.TrimSpace(uri), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return ImageAttachment{}, false
	}

	declared := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	return l.FromBase64(payload, declared)
}

// FromFile reads a dropped local file.
func (l *AttachmentLoader) FromFile(path string) (ImageAttachment, bool) {
	stat, err := l.FS.Stat(path)
	if err != nil || stat.IsDir() || stat.Size() > l.MaxSize {
		return ImageAttachment{}, false
	}

	data, err := afero.ReadFile(l.FS, path)
	if err != nil {
		return ImageAttachment{}, false
	}

	return l.FromBytes(data, mimeTypeByExtension(path))
}

// FromPaste interprets pasted text. A data URI, or a paste made only of
// references to existing files (what terminals produce on drag and drop), is
// consumed: images are returned and other files are dropped silently. Any
// other paste is ordinary text and consumed is false.
func (l *AttachmentLoader) FromPaste(payload string) (images []ImageAttachment, consumed bool) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, false
	}

	if strings.HasPrefix(payload, "data:") {
		image, ok := l.FromDataURI(payload)
		if !ok {
			return nil, strings.HasPrefix(payload, "data:image/")
		}
		return []ImageAttachment{image}, true
	}

	paths, ok := l.fileReferences(payload)
	if !ok {
		return nil, false
	}

	for _, path := range paths {
		if image, ok := l.FromFile(path); ok {
			images = append(images, image)
		}
	}

	return images, true
}

func (l *AttachmentLoader) fileReferences(payload string) ([]string, bool) {
	words, ok := splitWords(payload)
	if !ok || len(words) == 0 {
		return nil, false
	}

	paths := make([]string, 0, len(words))
	for _, word := range words {
		path := word
		if strings.HasPrefix(path, "file://") {
			parsed, err := url.Parse(path)
			if err != nil {
				return nil, false
			}
			path = parsed.Path
		}

		if !filepath.IsAbs(path) {
			return nil, false
		}
		if _, err := l.FS.Stat(path); err != nil {
			return nil, false
		}
		paths = append(paths, path)
	}

	return paths, true
}

// splitWords splits shell-style: whitespace separated, with quotes and
// backslash escapes as produced by terminal drag and drop.
func splitWords(s string) ([]string, bool) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, false
	}
	if inWord {
		words = append(words, current.String())
	}

	return words, true
}

func imageType(data []byte, declared string) (string, bool) {
	head := data
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}

	sniffed := http.DetectContentType(head)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, true
	}

	// tiff, heic and friends are unknown to the sniffer
	if sniffed == "application/octet-stream" && strings.HasPrefix(declared, "image/") {
		return declared, true
	}

	return "", false
}

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".ico":  "image/x-icon",
}

func mimeTypeByExtension(path string) string {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
