package client

// Style describes how a category is rendered on a card.
type Style struct {
	Icon       string
	Background string
	Text       string
	Border     string
}

var categoryStyles = map[string]Style{
	"contrat":      {Icon: "📄", Background: "bg-emerald-500/20", Text: "text-emerald-400", Border: "border-emerald-500/30"},
	"facture":      {Icon: "🧾", Background: "bg-amber-500/20", Text: "text-amber-400", Border: "border-amber-500/30"},
	"rapport":      {Icon: "📊", Background: "bg-blue-500/20", Text: "text-blue-400", Border: "border-blue-500/30"},
	"presentation": {Icon: "🖥", Background: "bg-purple-500/20", Text: "text-purple-400", Border: "border-purple-500/30"},
	"autre":        {Icon: "📁", Background: "bg-slate-500/20", Text: "text-slate-400", Border: "border-slate-500/30"},
}

var typeIcons = map[string]string{
	"pdf":   "📕",
	"doc":   "📘",
	"xls":   "📗",
	"ppt":   "📙",
	"img":   "🖼",
	"other": "📎",
}

// StyleFor resolves a category name to its style. Unknown categories
// resolve to the "autre" style, so the function is total.
func StyleFor(category string) Style {
	if s, ok := categoryStyles[category]; ok {
		return s
	}
	return categoryStyles["autre"]
}

// TypeIcon resolves a file type to its icon, falling back to the
// generic "other" icon.
func TypeIcon(fileType string) string {
	if icon, ok := typeIcons[fileType]; ok {
		return icon
	}
	return typeIcons["other"]
}
