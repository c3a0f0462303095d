package surface

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/iksnae/chat-snare/internal"
)

// Sub-element selectors within one message node
const (
	timestampSelector = ".chat-line__timestamp"
	senderSelector    = ".chat-author__display-name"
	fragmentSelector  = "span.text-fragment, img.chat-line__message--emote"
)

// ParseNode decomposes one message element's markup into a RawNode:
// displayed timestamp, sender identifier, and the ordered sequence of
// text spans and emote images. On parse failure the returned node still
// carries the raw markup for diagnostics.
func ParseNode(markup string) (internal.RawNode, error) {
	node := internal.RawNode{Markup: markup}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return node, err
	}

	node.Timestamp = strings.TrimSpace(doc.Find(timestampSelector).First().Text())

	sender := doc.Find(senderSelector).First()
	if login, ok := sender.Attr("data-a-user"); ok && strings.TrimSpace(login) != "" {
		node.Sender = strings.TrimSpace(login)
	} else {
		node.Sender = strings.TrimSpace(sender.Text())
	}

	// goquery matches in document order, which preserves the on-screen
	// interleaving of text and emotes.
	doc.Find(fragmentSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.Is("img") {
			label, _ := sel.Attr("alt")
			label = strings.TrimSpace(label)
			if label == "" {
				return
			}
			node.Fragments = append(node.Fragments, internal.Fragment{
				Kind:  internal.FragmentEmote,
				Label: label,
			})
			return
		}
		node.Fragments = append(node.Fragments, internal.Fragment{
			Kind: internal.FragmentText,
			Text: sel.Text(),
		})
	})

	if len(node.Fragments) == 0 {
		// No tagged sub-fields: keep the element's overall text so the
		// normalizer can fall back to it.
		node.RawText = strings.TrimSpace(doc.Text())
	}

	return node, nil
}
