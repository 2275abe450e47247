package landing

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Ealfred1/ResQ-X-checklist/domain/signup"
)

type Feature struct {
	Icon        string
	Title       string
	Description string
}

var guideFeatures = []Feature{
	{"⚡", "Lightning Fast Response", "30-minute emergency response anywhere in Lagos"},
	{"🛡️", "Professional Service", "Vetted and trained emergency responders"},
	{"🚗", "Complete Coverage", "From towing to fuel delivery, we've got you covered"},
}

func SiteHeader() g.Node {
	return Header(
		ID("site-header"),
		Class("site-header"),
		g.Attr("data-scrolled", "false"),
		Div(
			Class("container"),
			A(Class("brand"), Href("/"), g.Text("ResQ-X")),
		),
	)
}

func Hero() g.Node {
	return Section(
		Class("hero fade-in"),
		H1(
			g.Text("Never Get Stranded in "),
			Span(Class("accent"), g.Text("Lagos")),
			g.Text(" Again"),
		),
		P(
			Class("lead"),
			g.Text("Download our free guide on emergency vehicle services and learn how ResQ-X is revolutionizing roadside assistance."),
		),
	)
}

func Features() g.Node {
	return Div(
		Class("features"),
		H2(g.Text("Inside The Guide:")),
		Ul(
			Class("feature-list"),
			g.Group(g.Map(indexed(guideFeatures), func(f indexedFeature) g.Node {
				return Li(
					Class("feature fade-in"),
					g.Attr("style", "animation-delay: "+strconv.Itoa(f.index*300)+"ms"),
					Span(Class("feature-icon"), g.Attr("aria-hidden", "true"), g.Text(f.Icon)),
					Div(
						H3(g.Text(f.Title)),
						P(g.Text(f.Description)),
					),
				)
			})),
		),
	)
}

type indexedFeature struct {
	Feature
	index int
}

func indexed(fs []Feature) []indexedFeature {
	out := make([]indexedFeature, len(fs))
	for i, f := range fs {
		out[i] = indexedFeature{Feature: f, index: i}
	}
	return out
}

// CardConfig carries what the signup card needs besides the visitor state.
type CardConfig struct {
	DownloadFilename string
	SuccessDisplay   time.Duration
}

// SignupCard renders the form or the success notice for state. Both are
// always present so the script can switch between them without a reload.
func SignupCard(state signup.State, cfg CardConfig) g.Node {
	success := state.Phase == signup.PhaseSuccess
	submitting := state.Phase == signup.PhaseSubmitting

	label := "Download Free Guide"
	if submitting {
		label = "Downloading..."
	}

	return Div(
		ID("signup"),
		Class("signup-card fade-in"),
		g.Attr("style", "animation-delay: 600ms"),
		g.Attr("data-filename", cfg.DownloadFilename),
		g.Attr("data-success-ms", strconv.FormatInt(cfg.SuccessDisplay.Milliseconds(), 10)),

		Div(
			ID("signup-success"),
			Class("signup-success"),
			g.If(!success, g.Attr("hidden")),
			Div(Class("celebrate"), g.Attr("aria-hidden", "true"), g.Text("🎉")),
			H3(g.Text("Successfully Downloaded!")),
			P(g.Text("Check your downloads folder for the guide.")),
		),

		FormEl(
			ID("signup-form"),
			Class("signup-form"),
			Method("post"),
			Action("/api/subscribe"),
			g.If(success, g.Attr("hidden")),

			H3(g.Text("Get Your Free Guide")),
			P(Class("muted"), g.Text("Join thousands of Lagos drivers staying prepared")),

			Div(
				ID("signup-error"),
				Class("signup-error"),
				g.Attr("role", "alert"),
				g.If(state.Message == "", g.Attr("hidden")),
				g.Text(state.Message),
			),

			Input(
				ID("signup-email"),
				Type("email"),
				Name("email"),
				Placeholder("Enter your email address"),
				AutoComplete("email"),
				Value(state.Email),
				Required(),
			),
			Button(
				ID("signup-submit"),
				Type("submit"),
				g.If(submitting, Disabled()),
				Span(Class("label"), g.Text(label)),
				Span(Class("arrow"), g.Attr("aria-hidden", "true"), g.Text("↓")),
			),

			P(Class("muted small center"), g.Text("Your information is safe with us. No spam, ever.")),
		),
	)
}

func PageFooter(year int) g.Node {
	return Footer(
		Class("site-footer"),
		Div(
			Class("container footer-row"),
			P(g.Text("© "+strconv.Itoa(year)+" ResQ-X. All rights reserved.")),
			Nav(
				A(Href("#"), g.Text("Privacy Policy")),
				A(Href("#"), g.Text("Terms of Service")),
				A(Href("#"), g.Text("Contact")),
			),
		),
	)
}
