package usecase

import (
	"regexp"
	"strings"

	"github.com/radiogagalight/f1-together/internal/domain/profile"
)

// mentionPattern matches an @ immediately followed by word characters. A bare
// trailing @ does not match.
var mentionPattern = regexp.MustCompile(`@(\w+)`)

// MentionService resolves @handle tokens in comment text against a profile
// directory snapshot. Resolution is pure: unmatched handles are dropped, the
// sender never mentions themselves, and each recipient appears once.
type MentionService struct{}

func NewMentionService() *MentionService {
	return &MentionService{}
}

func (s *MentionService) Resolve(text string, dir *profile.Directory, senderID string) []string {
	if dir.Len() == 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	var recipients []string
	seen := make(map[string]struct{})
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		handle := strings.ToLower(match[1])
		id, ok := dir.ResolveHandle(handle, senderID)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	return recipients
}

// Spans reports the byte offsets of the tokens in text that resolve to a
// profile, for highlighting on render. Unresolved tokens are left out so they
// display as plain text.
func (s *MentionService) Spans(text string, dir *profile.Directory, senderID string) []MentionSpan {
	if dir.Len() == 0 || text == "" {
		return nil
	}

	var spans []MentionSpan
	for _, loc := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		handle := strings.ToLower(text[loc[2]:loc[3]])
		id, ok := dir.ResolveHandle(handle, senderID)
		if !ok {
			continue
		}
		spans = append(spans, MentionSpan{
			Start:  loc[0],
			End:    loc[1],
			UserID: id,
		})
	}

	return spans
}

// MentionSpan locates one resolved mention token inside comment text.
type MentionSpan struct {
	Start  int
	End    int
	UserID string
}
