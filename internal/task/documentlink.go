package task

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// EncodeDocumentLink serialises a DocumentLink to canonical JSON and
// base64-encodes it, the form Device stores the link in.
func EncodeDocumentLink(l *DocumentLink) (string, error) {
	if l == nil {
		return "", nil
	}

	raw, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("task: encoding document link: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeDocumentLink reverses EncodeDocumentLink. An empty string yields a
// nil link, not an error.
func DecodeDocumentLink(encoded string) (*DocumentLink, error) {
	if encoded == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("task: decoding document link base64: %w", err)
	}

	var l DocumentLink
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("task: decoding document link json: %w", err)
	}

	return &l, nil
}

// documentLinkSuffixPattern matches the readable suffix line the Host
// adapter appends to notes when a task carries a document link:
// "📎 <basename>(page N)". It is stripped on ingress so round-tripping
// does not duplicate or pollute the notes field.
var documentLinkSuffixPattern = regexp.MustCompile(`\n?📎 .+\(page \d+\)\s*$`)

// legacySyncTagPattern matches the superseded "[sync:<uuid>]" marker that
// an earlier design embedded in Host notes for pairing. No code path
// writes this marker anymore, but ingress still strips it for back-compat
// with notes created by that earlier design.
var legacySyncTagPattern = regexp.MustCompile(`\[sync:[0-9a-fA-F-]+\]`)

// collapseWhitespacePattern tidies up the gap left behind once a legacy
// tag is removed from the middle of a notes string.
var collapseWhitespacePattern = regexp.MustCompile(`[ \t]{2,}`)

// AppendDocumentLinkSuffix appends the readable document-link suffix to
// notes for egress to Host, if l is non-nil.
func AppendDocumentLinkSuffix(notes string, l *DocumentLink) string {
	if l == nil {
		return notes
	}

	base := l.FilePath
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}

	suffix := fmt.Sprintf("📎 %s(page %d)", base, l.Page)
	if notes == "" {
		return suffix
	}

	return notes + "\n" + suffix
}

// StripIngressMarkers removes the document-link readable suffix and any
// legacy [sync:<uuid>] tag from notes read from Host.
func StripIngressMarkers(notes string) string {
	notes = documentLinkSuffixPattern.ReplaceAllString(notes, "")
	notes = legacySyncTagPattern.ReplaceAllString(notes, "")
	notes = collapseWhitespacePattern.ReplaceAllString(notes, " ")

	return strings.TrimSpace(notes)
}
