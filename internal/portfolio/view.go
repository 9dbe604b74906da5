package portfolio

// CategoryGroup is one heading of a grouped skills section.
type CategoryGroup struct {
	Category string  `json:"category"`
	Skills   []Skill `json:"skills"`
}

// GroupByCategory groups skills by category, keeping categories in the order
// they first appear and skills in list order.
func GroupByCategory(skills []Skill) []CategoryGroup {
	var groups []CategoryGroup
	index := map[string]int{}
	for _, sk := range skills {
		i, ok := index[sk.Category]
		if !ok {
			i = len(groups)
			index[sk.Category] = i
			groups = append(groups, CategoryGroup{Category: sk.Category})
		}
		groups[i].Skills = append(groups[i].Skills, sk)
	}
	return groups
}

// FilterByCategory returns the skills in category, or all of them for "all"
// or "".
func FilterByCategory(skills []Skill, category string) []Skill {
	if category == "" || category == "all" {
		return skills
	}
	out := []Skill{}
	for _, sk := range skills {
		if sk.Category == category {
			out = append(out, sk)
		}
	}
	return out
}

// FilterByKind returns the projects of one kind, or all of them for "all"
// or "".
func FilterByKind(projects []Project, kind string) []Project {
	if kind == "" || kind == "all" {
		return projects
	}
	out := []Project{}
	for _, p := range projects {
		if string(p.Kind) == kind {
			out = append(out, p)
		}
	}
	return out
}

// MaxStars is the number of stars a skill rating is drawn out of.
const MaxStars = 3

// Stars maps a proficiency level to a 0..3 rating.
func Stars(level string) int {
	switch level {
	case LevelExpert:
		return 3
	case LevelIntermediate:
		return 2
	case LevelBeginner:
		return 1
	default:
		return 0
	}
}

// ExportOptions select which sections a shared or exported portfolio shows.
type ExportOptions struct {
	IncludeContact      bool `json:"includeContact"`
	IncludeProjects     bool `json:"includeProjects"`
	IncludeAchievements bool `json:"includeAchievements"`
	IncludeSkills       bool `json:"includeSkills"`
}

// DefaultExportOptions include every section.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{true, true, true, true}
}

// Filter blanks out the sections opts excludes. snap is a copy already, so
// it is modified and returned.
func (opts ExportOptions) Filter(snap Snapshot) Snapshot {
	if !opts.IncludeProjects {
		snap.Projects = nil
	}
	if !opts.IncludeSkills {
		snap.Skills = nil
	}
	if !opts.IncludeAchievements {
		snap.Achievements = Achievements{}
	}
	if !opts.IncludeContact {
		snap.Profile.Email = ""
		snap.Profile.Visibility.ShowContact = false
	}
	return snap
}
