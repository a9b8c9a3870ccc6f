package docsync

import (
	"git.home.luguber.info/inful/docsync/internal/discovery"
	"git.home.luguber.info/inful/docsync/internal/frontmatter"
)

// Validate parses and checks the frontmatter of every discovered source
// without writing anything. Parse failures and rule violations are both
// returned, as are discovered sources no pattern classifies. Sources
// without a metadata block are checked against their generated defaults.
func (s *Service) Validate() ([]SyncError, error) {
	b, err := s.begin("validate", StateSyncing)
	if err != nil {
		return nil, err
	}
	defer s.finish()

	sources, err := s.discover(b)
	if err != nil {
		return nil, err
	}

	issues := []SyncError{}
	for _, source := range sources {
		typ, err := b.classify(source)
		if err != nil {
			issues = append(issues, newSyncError(source, err))
			continue
		}
		content, err := s.files.ReadFile(source)
		if err != nil {
			issues = append(issues, newSyncError(source, err))
			continue
		}
		fm, err := frontmatter.Parse(content)
		if err != nil {
			issues = append(issues, newSyncError(source, err))
			continue
		}
		if fm == nil {
			fm = frontmatter.GenerateDefault(discovery.ExtractName(source, typ), typ)
		}
		for _, issue := range frontmatter.Validate(fm) {
			issues = append(issues, validationSyncError(source, issue))
		}
	}
	return issues, nil
}
