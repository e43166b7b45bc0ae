package monday

// gqlRequest is the JSON envelope for every Monday API call. User-supplied
// values travel in Variables only; the query text is static.
type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

const itemsPageQuery = `query ($board_id: [ID!], $limit: Int!, $column_ids: [String!]) {
  boards(ids: $board_id) {
    items_page(limit: $limit) {
      items {
        id
        name
        column_values(ids: $column_ids) {
          id
          text
        }
      }
    }
  }
}`

func itemsPageRequest(boardID string, limit int, columnID string) gqlRequest {
	return gqlRequest{
		Query: itemsPageQuery,
		Variables: map[string]interface{}{
			"board_id":   []string{boardID},
			"limit":      limit,
			"column_ids": []string{columnID},
		},
	}
}

const createUpdateMutation = `mutation ($item_id: ID!, $body: String!) {
  create_update(item_id: $item_id, body: $body) {
    id
  }
}`

func createUpdateRequest(itemID, body string) gqlRequest {
	return gqlRequest{
		Query: createUpdateMutation,
		Variables: map[string]interface{}{
			"item_id": itemID,
			"body":    body,
		},
	}
}

const createNotificationMutation = `mutation ($user_id: ID!, $target_id: ID!, $target_type: NotificationTargetType!, $text: String!) {
  create_notification(user_id: $user_id, target_id: $target_id, target_type: $target_type, text: $text) {
    id
  }
}`

func createNotificationRequest(userID int64, targetID, targetType, text string) gqlRequest {
	return gqlRequest{
		Query: createNotificationMutation,
		Variables: map[string]interface{}{
			"user_id":     userID,
			"target_id":   targetID,
			"target_type": targetType,
			"text":        text,
		},
	}
}
