package githubclient

// GraphQL query constants. All pagination uses the GraphQL cursor protocol;
// starred repositories are ordered most recently starred first.

const starredReposQuery = `
query GetStarredRepositories($username: String!, $cursor: String) {
  user(login: $username) {
    starredRepositories(first: 100, after: $cursor, orderBy: {field: STARRED_AT, direction: DESC}) {
      totalCount
      pageInfo {
        endCursor
        hasNextPage
      }
      edges {
        starredAt
        node {
          id
          nameWithOwner
          description
          stargazerCount
          url
          diskUsage
          pushedAt
          primaryLanguage {
            name
          }
          repositoryTopics(first: 5) {
            nodes {
              topic {
                name
              }
            }
          }
          languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
            nodes {
              name
            }
          }
        }
      }
    }
  }
}
`

const viewerStarredReposQuery = `
query GetViewerStarredRepositories($cursor: String) {
  viewer {
    starredRepositories(first: 100, after: $cursor, orderBy: {field: STARRED_AT, direction: DESC}) {
      totalCount
      pageInfo {
        endCursor
        hasNextPage
      }
      edges {
        starredAt
        node {
          id
          nameWithOwner
          description
          stargazerCount
          url
          diskUsage
          pushedAt
          primaryLanguage {
            name
          }
          repositoryTopics(first: 5) {
            nodes {
              topic {
                name
              }
            }
          }
          languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
            nodes {
              name
            }
          }
        }
      }
    }
  }
}
`

const currentUserQuery = `
query GetCurrentUser {
  viewer {
    login
    name
    avatarUrl
    bio
    company
    location
    createdAt
  }
}
`

const readmeByNameQuery = `
query GetReadme($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    object(expression: "HEAD:README.md") {
      ... on Blob {
        text
        byteSize
      }
    }
  }
}
`

const readmeByNodeQuery = `
query GetReadmeByNode($id: ID!) {
  node(id: $id) {
    ... on Repository {
      object(expression: "HEAD:README.md") {
        ... on Blob {
          text
          byteSize
        }
      }
    }
  }
}
`

const readmeBulkQuery = `
query GetReadmesBulk($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Repository {
      id
      object(expression: "HEAD:README.md") {
        ... on Blob {
          text
          byteSize
        }
      }
    }
  }
}
`
