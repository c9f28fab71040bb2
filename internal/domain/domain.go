package domain

import (
	"github.com/yungbote/lsbmorph-backend/internal/domain/catalog"
	"github.com/yungbote/lsbmorph-backend/internal/domain/labels"
	"github.com/yungbote/lsbmorph-backend/internal/domain/user"
)

type Galaxy = catalog.Galaxy
type DisplayParams = catalog.DisplayParams

type Classification = labels.Classification
type SkippedGalaxy = labels.SkippedGalaxy
type LSBClass = labels.LSBClass
type Morphology = labels.Morphology

type User = user.User

const SkyBkgMasked = labels.SkyBkgMasked

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Galaxy{},
		&Classification{},
		&SkippedGalaxy{},
	}
}
