package githubclient

import (
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// Raw GraphQL payload shapes. These stay private to this package; everything
// crossing the package boundary is translated into schema types exactly once.

type rawStarredConnection struct {
	TotalCount int `json:"totalCount"`
	PageInfo   struct {
		EndCursor   string `json:"endCursor"`
		HasNextPage bool   `json:"hasNextPage"`
	} `json:"pageInfo"`
	Edges []rawStarredEdge `json:"edges"`
}

type rawStarredEdge struct {
	StarredAt *time.Time    `json:"starredAt"`
	Node      rawRepository `json:"node"`
}

type rawRepository struct {
	ID              string     `json:"id"`
	NameWithOwner   string     `json:"nameWithOwner"`
	Description     string     `json:"description"`
	StargazerCount  int        `json:"stargazerCount"`
	URL             string     `json:"url"`
	DiskUsage       int        `json:"diskUsage"`
	PushedAt        *time.Time `json:"pushedAt"`
	PrimaryLanguage *struct {
		Name string `json:"name"`
	} `json:"primaryLanguage"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
	Languages struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"languages"`
}

type rawUser struct {
	Login     string     `json:"login"`
	Name      string     `json:"name"`
	AvatarURL string     `json:"avatarUrl"`
	Bio       string     `json:"bio"`
	Company   string     `json:"company"`
	Location  string     `json:"location"`
	CreatedAt *time.Time `json:"createdAt"`
}

type rawBlob struct {
	Text     string `json:"text"`
	ByteSize int    `json:"byteSize"`
}

// parseRepository translates one raw GraphQL node into the typed record.
func parseRepository(edge rawStarredEdge) (schema.Repository, error) {
	node := edge.Node
	owner, name, err := schema.SplitNameWithOwner(node.NameWithOwner)
	if err != nil {
		return schema.Repository{}, err
	}

	repo := schema.Repository{
		RepoID:           node.ID,
		NameWithOwner:    node.NameWithOwner,
		Name:             name,
		Owner:            owner,
		Description:      node.Description,
		StargazerCount:   node.StargazerCount,
		URL:              node.URL,
		StarredAt:        edge.StarredAt,
		PushedAt:         node.PushedAt,
		DiskUsage:        node.DiskUsage,
		RepositoryTopics: make([]string, 0, len(node.RepositoryTopics.Nodes)),
		Languages:        make([]string, 0, len(node.Languages.Nodes)),
	}
	if node.PrimaryLanguage != nil {
		repo.PrimaryLanguage = node.PrimaryLanguage.Name
	}
	for _, t := range node.RepositoryTopics.Nodes {
		repo.RepositoryTopics = append(repo.RepositoryTopics, t.Topic.Name)
	}
	for _, l := range node.Languages.Nodes {
		repo.Languages = append(repo.Languages, l.Name)
	}
	return repo, nil
}

// parseStarredPage translates one raw connection into a typed page. Nodes
// with a malformed identifier are skipped rather than failing the page.
func parseStarredPage(conn rawStarredConnection) *schema.StarredPage {
	page := &schema.StarredPage{
		Repositories: make([]schema.Repository, 0, len(conn.Edges)),
		TotalCount:   conn.TotalCount,
		HasNextPage:  conn.PageInfo.HasNextPage,
		EndCursor:    conn.PageInfo.EndCursor,
	}
	for _, edge := range conn.Edges {
		repo, err := parseRepository(edge)
		if err != nil {
			continue
		}
		page.Repositories = append(page.Repositories, repo)
	}
	return page
}

// parseReadme translates a blob lookup into the typed result. A nil blob
// means the repository has no README at HEAD.
func parseReadme(blob *rawBlob) *schema.ReadmeResult {
	if blob == nil || (blob.Text == "" && blob.ByteSize == 0) {
		return &schema.ReadmeResult{HasReadme: false}
	}
	return &schema.ReadmeResult{
		Content:   blob.Text,
		Size:      blob.ByteSize,
		HasReadme: true,
	}
}

// parseUser translates the viewer payload into the typed record.
func parseUser(u rawUser) *schema.UserInfo {
	return &schema.UserInfo{
		Login:     u.Login,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Company:   u.Company,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}
