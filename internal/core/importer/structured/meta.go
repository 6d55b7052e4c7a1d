package structured

import (
	"strings"

	"golang.org/x/net/html"

	"recipe-manager/internal/pkg/common"
)

// extractFromMetaTags 後備方案：從 meta 標籤與 <title> 擠出能用的欄位
// 永遠會產出一個候選食譜，即使幾乎全空
func extractFromMetaTags(doc *html.Node, sourceURL string) *common.RecipeCandidate {
	var ogTitle, ogDescription, ogImage, metaDescription, htmlTitle string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var property, name, content string
				for _, attr := range n.Attr {
					switch strings.ToLower(attr.Key) {
					case "property":
						property = strings.ToLower(attr.Val)
					case "name":
						name = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				switch {
				case property == "og:title" && ogTitle == "":
					ogTitle = content
				case property == "og:description" && ogDescription == "":
					ogDescription = content
				case property == "og:image" && ogImage == "":
					ogImage = content
				case name == "description" && metaDescription == "":
					metaDescription = content
				}
			case "title":
				if htmlTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					htmlTitle = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	candidate := common.NewRecipeCandidate()

	title := ogTitle
	if title == "" {
		title = htmlTitle
	}
	if strings.TrimSpace(title) != "" {
		candidate.Title = strings.TrimSpace(title)
	}

	description := ogDescription
	if description == "" {
		description = metaDescription
	}
	candidate.Description = common.StringPtr(description)
	candidate.ImageURL = common.StringPtr(ogImage)
	candidate.SourceURL = common.StringPtr(sourceURL)

	return candidate
}
