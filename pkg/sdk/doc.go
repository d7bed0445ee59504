// Package arttinder is a Go client for the arttinder HTTP API: photo search,
// search-term suggestions, preference-based recommendations and user handles.
//
//	client, _ := arttinder.New("http://127.0.0.1:8000", arttinder.WithPexelsKey(key))
//	page, _ := client.SearchImages(ctx, arttinder.SearchRequest{Query: "mountain sunrise"})
//	terms, _ := client.Suggest(ctx, "mountain sunrise", 3)
//
// Calls that act on behalf of a user need an id:
//
//	me := client.ForUser("u-123")
//	_ = me.UpsertUser(ctx, "ada")
//	_ = me.SetPrefs(ctx, arttinder.Preferences{"styles": "moody, noir"})
//	recs, _ := me.Recommend(ctx, arttinder.PageRequest{PerPage: 10})
//
// Error responses are returned as *APIError and match the package sentinels with errors.Is.
package arttinder
