package config

import "github.com/vovakirdan/tui-lander/internal/story"

// Script builds the story table.
func (s StoryConfig) Script() (*story.Script, error) {
	var entries []story.Entry
	for _, lvl := range s.Levels {
		for _, t := range lvl.Triggers {
			entries = append(entries, story.Entry{
				Level:   lvl.Level,
				Trigger: t.ID,
				Effect: story.Effect{
					Text:          t.Text,
					EnableTurning: t.EnableTurning,
					EnableThrust:  t.EnableThrust,
					Complete:      t.Complete,
				},
			})
		}
	}
	return story.NewScript(entries)
}
