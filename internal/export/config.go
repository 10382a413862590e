package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/kdpii/nerlabel/internal/models"
)

// LabelConfig renders the Label Studio tag configuration for the active labels,
// ordered by sort order then value.
func LabelConfig(labels []*models.Label) string {
	active := make([]*models.Label, 0, len(labels))
	for _, l := range labels {
		if l.IsActive {
			active = append(active, l)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].SortOrder != active[j].SortOrder {
			return active[i].SortOrder < active[j].SortOrder
		}
		return active[i].Value < active[j].Value
	})

	var b strings.Builder
	b.WriteString("<View>\n")
	b.WriteString(`  <Text name="text" value="$text"/>` + "\n")
	b.WriteString(`  <Labels name="label" toName="text">` + "\n")
	for _, l := range active {
		fmt.Fprintf(&b, `    <Label value="%s" background="%s"`, attr(l.Value), attr(l.Background))
		if h := l.HotkeyValue(); h != "" {
			fmt.Fprintf(&b, ` hotkey="%s"`, attr(h))
		}
		b.WriteString("/>\n")
	}
	b.WriteString("  </Labels>\n")
	b.WriteString("</View>\n")
	return b.String()
}

func attr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// ConfigLabel is a label read back from a tag configuration
type ConfigLabel struct {
	Value      string
	Background string
	Hotkey     string
}

// ParseLabelConfig reads the Label elements of a Label Studio configuration
func ParseLabelConfig(r io.Reader) ([]ConfigLabel, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label config: %w", err)
	}

	nodes, err := xmlquery.QueryAll(doc, "//Labels/Label")
	if err != nil {
		return nil, fmt.Errorf("failed to query label config: %w", err)
	}

	labels := make([]ConfigLabel, 0, len(nodes))
	for _, n := range nodes {
		value := n.SelectAttr("value")
		if value == "" {
			continue
		}
		labels = append(labels, ConfigLabel{
			Value:      value,
			Background: n.SelectAttr("background"),
			Hotkey:     n.SelectAttr("hotkey"),
		})
	}
	return labels, nil
}
