package background

import (
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bikeanjo/bikeanjo-api/schema"
	"github.com/bikeanjo/bikeanjo-api/utils"
)

// CommaSeparatedTopics will return a string of help topic labels
// separated by commas, localized when a translation exists
func CommaSeparatedTopics(lang string, topics schema.TopicSet) string {
	loc := utils.NewLocalizer(lang)

	names := make([]string, 0)

	for _, t := range topics.Topics() {
		if name, err := loc.Localize(&i18n.LocalizeConfig{
			MessageID: fmt.Sprintf("topics.%d.name", t),
		}); err == nil {
			names = append(names, name)
		} else {
			for _, c := range schema.HelpTopics {
				if c.Code == t {
					names = append(names, c.Label)
					break
				}
			}
		}
	}

	return strings.Join(names, ", ")
}
