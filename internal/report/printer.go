package report

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bluenviron/gosdp/pkg/description"
	"github.com/bluenviron/gosdp/pkg/format"
	"github.com/bluenviron/gosdp/pkg/sdp"
)

const ruler = "────────────────────────────────────────────────────────────"

// Printer writes results in text form.
type Printer struct {
	// base URL used to resolve the control URL of each media.
	// When nil, control URLs are not printed.
	ContentBase *url.URL

	w io.Writer

	header  lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	attrKey lipgloss.Style
}

// NewPrinter allocates a Printer.
// When color is false, output contains no escape sequences.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:       w,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("10")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		label:   r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		attrKey: r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

func (p *Printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Banner writes the banner.
func (p *Printer) Banner(fileCount int) {
	p.printf("%s\n", p.header.Render("SDP Parser - Batch Validation"))
	p.printf("%s\n\n", p.dim.Render(fmt.Sprintf("%d file(s)", fileCount)))
}

// Result writes the result of checking a file.
func (p *Printer) Result(r Result, reconstruct bool) {
	p.printf("┌%s\n", ruler)
	p.printf("│  %s\n", p.header.Render("Processing: "+r.File))
	p.printf("└%s\n", ruler)

	switch r.Kind() {
	case KindOK:
		p.session(r.Session)
		if reconstruct {
			p.reconstructed(r.Session)
		}

	case KindMissing:
		p.printf("  %s\n\n", p.warn.Render("⚠  File not found: "+r.File))

	case KindIO:
		p.printf("  %s\n\n", p.fail.Render("✘  Failed to read "+r.File+": "+r.Err.Error()))

	default:
		p.printf("  %s\n\n", p.fail.Render("✘  Failed to parse "+r.File+": "+r.Err.Error()))
	}
}

func (p *Printer) field(branch string, name string, value string) {
	p.printf("  %s %s %s\n", branch, p.label.Render(fmt.Sprintf("%-20s", name+":")), value)
}

func joinBandwidths(bws []sdp.Bandwidth) string {
	tmp := make([]string, len(bws))
	for i, bw := range bws {
		tmp[i] = bw.String()
	}
	return strings.Join(tmp, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (p *Printer) session(s *sdp.Session) {
	p.printf("  %s\n", p.ok.Render("✔  Parse successful"))

	name := s.SessionName
	if name == "" {
		name = "(none)"
	}
	p.field("├─", "Session Name   (s=)", name)
	p.field("├─", "Origin         (o=)", s.Origin.String())
	p.field("├─", "Timing         (t=)", DescribeTiming(s.Timing))

	if s.Connection != nil {
		p.field("├─", "Connection     (c=)", s.Connection.String())
	} else {
		p.field("├─", "Connection     (c=)", p.dim.Render("(none at session level)"))
	}

	if s.URI != nil {
		p.field("├─", "URI            (u=)", *s.URI)
	}

	if s.Information != nil {
		p.field("├─", "Information    (i=)", *s.Information)
	}

	if len(s.Emails) != 0 {
		p.field("├─", "Emails         (e=)", strings.Join(s.Emails, ", "))
	}

	if len(s.Phones) != 0 {
		p.field("├─", "Phones         (p=)", strings.Join(s.Phones, ", "))
	}

	if len(s.Bandwidths) != 0 {
		p.field("├─", "Bandwidth      (b=)", joinBandwidths(s.Bandwidths))
	}

	p.field("├─", "Session Attrs  (a=)", fmt.Sprintf("%d attribute%s", len(s.Attributes), plural(len(s.Attributes))))
	p.attributes(s.Attributes, "  │    ")

	var desc description.Session
	descErr := desc.FromSDP(s)
	if descErr != nil {
		p.field("├─", "Stream", p.warn.Render("⚠  "+descErr.Error()))
	}

	p.field("└─", "Media Sections (m=)", fmt.Sprintf("%d", len(s.Media)))

	for i, m := range s.Media {
		branch := "     ├─"
		sub := "     │  "
		if i == len(s.Media)-1 {
			branch = "     └─"
			sub = "        "
		}

		p.printf("  %s [%d] type=%-12s port=%-6d proto=%-18s fmt=[%s]\n",
			branch, i+1, m.Type, m.Port, m.Protocol, strings.Join(m.Formats, ", "))

		if m.Connection != nil {
			p.printf("  %s     Connection (c=): %s\n", sub, m.Connection.String())
		}

		if len(m.Bandwidths) != 0 {
			p.printf("  %s     Bandwidth  (b=): %s\n", sub, joinBandwidths(m.Bandwidths))
		}

		var formats []format.Format
		if descErr == nil {
			dm := desc.Medias[i]
			if dm.ID != "" {
				p.printf("  %s     ID             : %s\n", sub, dm.ID)
			}
			p.printf("  %s     Direction      : %s\n", sub, dm.Direction)

			if p.ContentBase != nil {
				if u, err := dm.URL(p.ContentBase); err == nil {
					p.printf("  %s     Control URL    : %s\n", sub, u)
				} else {
					p.printf("  %s     Control URL    : %s\n", sub, p.warn.Render("⚠  "+err.Error()))
				}
			}
			formats = dm.Formats
		} else {
			formats = format.FromMedia(m)
		}

		if len(formats) != 0 {
			tmp := make([]string, len(formats))
			for j, f := range formats {
				tmp[j] = f.String()
			}
			p.printf("  %s     Formats        : %s\n", sub, strings.Join(tmp, ", "))

			for _, f := range formats {
				if d := f.Details(); d != "" {
					p.printf("  %s     Codec Details  : %s %s\n", sub, f.String(), d)
				}
			}
		}

		if len(m.Attributes) != 0 {
			p.printf("  %s     Attributes (a=): %d total\n", sub, len(m.Attributes))
			p.attributes(m.Attributes, "  "+sub+"       ")
		}
	}

	p.printf("\n")
}

func (p *Printer) attributes(attrs []sdp.Attribute, indent string) {
	for _, g := range GroupAttributes(attrs) {
		key := p.attrKey.Render(fmt.Sprintf("%-22s", g.Name))
		count := fmt.Sprintf("×%-3d", len(g.Values))

		switch {
		case g.IsFlag():
			p.printf("%s%s  %s  %s\n", indent, key, count, p.dim.Render("(flag)"))

		case len(g.Values) == 1:
			p.printf("%s%s  %s  %s\n", indent, key, count, truncate(g.Values[0], maxSingleValue))

		default:
			p.printf("%s%s  ×%d\n", indent, key, len(g.Values))
			for _, v := range g.Values {
				p.printf("%s    ↳ %s\n", indent, truncate(v, maxMultiValue))
			}
		}
	}
}

func (p *Printer) reconstructed(s *sdp.Session) {
	p.printf("  %s\n", p.dim.Render("── Reconstructed SDP ──"))
	for _, line := range strings.Split(strings.TrimSuffix(s.String(), "\r\n"), "\r\n") {
		p.printf("  │  %s\n", line)
	}
	p.printf("  %s\n\n", ruler)
}

// Summary writes the summary of all results.
func (p *Printer) Summary(results []Result) {
	passed, failed := Count(results)

	p.printf("%s\n", p.header.Render("SUMMARY"))
	p.printf("  Total files checked : %d\n", len(results))
	p.printf("  %s\n", p.ok.Render(fmt.Sprintf("✔  Passed           : %d", passed)))
	p.printf("  %s\n", p.fail.Render(fmt.Sprintf("✘  Failed / Missing : %d", failed)))

	if passed > 0 {
		p.printf("  Parsed files:\n")
		for _, r := range results {
			if r.Failed() {
				continue
			}

			mediaAttrs := 0
			for _, m := range r.Session.Media {
				mediaAttrs += len(m.Attributes)
			}

			p.printf("    ✔  %-24s media=%-3d session-attrs=%-5d media-attrs=%d\n",
				r.File, len(r.Session.Media), len(r.Session.Attributes), mediaAttrs)
		}
	}

	if failed > 0 {
		p.printf("  Failed / Missing files:\n")
		for _, r := range results {
			if !r.Failed() {
				continue
			}
			p.printf("    ✘  %-24s %-8s %s\n", r.File, r.Kind(), truncate(r.Err.Error(), maxSingleValue))
		}
	}
}
