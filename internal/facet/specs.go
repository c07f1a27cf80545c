package facet

import "contentbrowser/internal/domain"

func personIDs(it domain.Item) []string { return it.PersonIDs }

func companyIDs(it domain.Item) []string {
	if it.CompanyID == "" {
		return nil
	}
	return []string{it.CompanyID}
}

// PersonSpec is a group over the people an item references
func PersonSpec(name string) GroupSpec {
	return GroupSpec{Name: name, Reference: &ReferenceSpec{Kind: domain.KindPerson, IDs: personIDs}}
}

// CompanySpec is a group over the company an item references
func CompanySpec(name string) GroupSpec {
	return GroupSpec{Name: name, Reference: &ReferenceSpec{Kind: domain.KindCompany, IDs: companyIDs}}
}

// SpecsFor returns the filter groups shown for kind
func SpecsFor(kind domain.Kind) []GroupSpec {
	switch kind {
	case domain.KindVideo:
		return []GroupSpec{
			AttrSpec("Type", true),
			AttrSpec("Event", true),
			PersonSpec("Speaker"),
			AttrSpec("Platform", true),
			AttrSpec("Domain", true),
		}
	case domain.KindBlog:
		return []GroupSpec{PersonSpec("Author"), CompanySpec("Company")}
	case domain.KindBook:
		return []GroupSpec{AttrSpec("Publisher", false), AttrSpec("Author", true)}
	case domain.KindLibrary, domain.KindTool:
		return []GroupSpec{AttrSpec("License", false), AttrSpec("Domain", true)}
	case domain.KindTutorial:
		return []GroupSpec{AttrSpec("Format", true), AttrSpec("Level", false)}
	case domain.KindPerson:
		return []GroupSpec{AttrSpec("Badges", true), CompanySpec("Company")}
	case domain.KindApp:
		return []GroupSpec{AttrSpec("Domain", true), AttrSpec("Country", false)}
	case domain.KindCompany:
		return []GroupSpec{AttrSpec("Domain", true)}
	case domain.KindNews, domain.KindDownload:
		return []GroupSpec{AttrSpec("Type", true)}
	}
	return nil
}
