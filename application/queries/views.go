package queries

import (
	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
	"scholargraph/pkg/utils"
)

// AffiliationView is the read model of an affiliation
type AffiliationView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	Publications []uint64 `json:"publications"`
	Version      int      `json:"version"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// NewAffiliationView maps an affiliation to its read model
func NewAffiliationView(a *entities.Affiliation) AffiliationView {
	return AffiliationView{
		ID:           a.ID().String(),
		Name:         a.Name().String(),
		X:            a.Coord().X(),
		Y:            a.Coord().Y(),
		Publications: publicationIDs(a.Publications()),
		Version:      a.Version(),
		CreatedAt:    utils.FormatRFC3339(a.CreatedAt()),
		UpdatedAt:    utils.FormatRFC3339(a.UpdatedAt()),
	}
}

// PublicationView is the read model of a publication
type PublicationView struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	Affiliations []string `json:"affiliations"`
	Parent       *uint64  `json:"parent,omitempty"`
	ReferencedBy []uint64 `json:"referenced_by"`
	Version      int      `json:"version"`
	CreatedAt    string   `json:"created_at"`
}

// NewPublicationView maps a publication to its read model
func NewPublicationView(p *entities.Publication) PublicationView {
	view := PublicationView{
		ID:           uint64(p.ID()),
		Title:        p.Title().String(),
		Year:         p.Year().Int(),
		Affiliations: affiliationIDs(p.Affiliations()),
		ReferencedBy: publicationIDs(p.Children()),
		Version:      p.Version(),
		CreatedAt:    utils.FormatRFC3339(p.CreatedAt()),
	}
	if parent, ok := p.Parent(); ok {
		id := uint64(parent)
		view.Parent = &id
	}
	return view
}

// DatedPublicationView pairs a publication with its year
type DatedPublicationView struct {
	Year          int    `json:"year"`
	PublicationID uint64 `json:"publication_id"`
}

// ConnectionsView lists connections
type ConnectionsView struct {
	AffiliationID string                    `json:"affiliation_id,omitempty"`
	Count         int                       `json:"count"`
	Connections   []valueobjects.Connection `json:"connections"`
}

// PathView is the answer to a path query. Found is false when the
// endpoints are unknown, equal, or disconnected.
type PathView struct {
	Kind         string                        `json:"kind"`
	From         string                        `json:"from"`
	To           string                        `json:"to"`
	Found        bool                          `json:"found"`
	Hops         int                           `json:"hops"`
	Distance     int                           `json:"distance"`
	Bottleneck   int                           `json:"bottleneck"`
	Affiliations []string                      `json:"affiliations"`
	Steps        valueobjects.PathWithDistance `json:"steps"`
}

// NewPathView builds the answer to a path query
func NewPathView(kind, from, to string, result valueobjects.PathWithDistance) PathView {
	path := result.Path()
	steps := result
	if steps == nil {
		steps = valueobjects.PathWithDistance{}
	}
	return PathView{
		Kind:         kind,
		From:         from,
		To:           to,
		Found:        !path.IsEmpty(),
		Hops:         len(path),
		Distance:     result.Distance(),
		Bottleneck:   path.Bottleneck(),
		Affiliations: affiliationIDs(path.Affiliations()),
		Steps:        steps,
	}
}

// ReferencesView lists publications related to one publication
type ReferencesView struct {
	PublicationID uint64   `json:"publication_id"`
	Scope         string   `json:"scope"`
	Publications  []uint64 `json:"publications"`
}

// CommonParentView is the closest shared ancestor of two publications
type CommonParentView struct {
	A      uint64 `json:"a"`
	B      uint64 `json:"b"`
	Parent uint64 `json:"parent"`
}

// StatsView summarises the catalog
type StatsView struct {
	Affiliations          int `json:"affiliations"`
	Publications          int `json:"publications"`
	Connections           int `json:"connections"`
	ConnectedAffiliations int `json:"connected_affiliations"`
}

func publicationIDs(ids []valueobjects.PublicationID) []uint64 {
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		out = append(out, uint64(id))
	}
	return out
}

func affiliationIDs(ids []valueobjects.AffiliationID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// AffiliationPublicationsView lists an affiliation's publications. Dated is
// filled instead of Publications when a starting year was given.
type AffiliationPublicationsView struct {
	AffiliationID string                 `json:"affiliation_id"`
	Publications  []uint64               `json:"publications,omitempty"`
	Dated         []DatedPublicationView `json:"dated,omitempty"`
}
