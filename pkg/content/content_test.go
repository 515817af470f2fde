package content

import "testing"

func TestSectionTitles(t *testing.T) {
	for _, s := range Order {
		if s.Title() == "" {
			t.Errorf("Section %q has no title", s)
		}
	}
	if Section("footer").Title() != "" {
		t.Error("Unknown section should have no title")
	}
}

func TestDefault(t *testing.T) {
	site := Default()
	if len(site.Sections) != len(Order) {
		t.Fatalf("Sections = %v", site.Sections)
	}

	// Callers must not be able to reorder the package order through a site.
	site.Sections[0] = Contact
	if Order[0] != Intro {
		t.Error("Default should copy Order")
	}

	ids := map[int]bool{}
	for _, p := range site.Projects {
		if ids[p.ID] {
			t.Errorf("Duplicate project id %d", p.ID)
		}
		ids[p.ID] = true
	}
}

func TestProject(t *testing.T) {
	site := Default()
	p, ok := site.Project(2)
	if !ok || p.Title != "Talkify" {
		t.Errorf("Project(2) = %+v, %v", p, ok)
	}
	if _, ok := site.Project(42); ok {
		t.Error("Project(42) should not exist")
	}
}

func TestSkillsByCategory(t *testing.T) {
	site := Default()
	groups := site.SkillsByCategory()

	total := 0
	for cat, skills := range groups {
		for _, sk := range skills {
			if sk.Category != cat {
				t.Errorf("%s grouped under %s", sk.Name, cat)
			}
		}
		total += len(skills)
	}
	if total != len(site.Skills) {
		t.Errorf("Grouped %d skills, want %d", total, len(site.Skills))
	}
	if first := groups[Frontend]; len(first) == 0 || first[0].Name != "React / Next.js" {
		t.Errorf("Frontend order not preserved: %+v", first)
	}
}
