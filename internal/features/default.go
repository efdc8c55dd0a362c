package features

// Default returns the built-in feature list shown when the configuration does
// not provide homepage features.
func Default() []Item {
	return []Item{
		{
			Title:       "Ingest",
			Icon:        "img/undraw_docusaurus_mountain.svg",
			Description: Text("Stream Solana chain data through the ingest → decode → publish pipeline, with NATS JetStream as the event backbone."),
		},
		{
			Title:       "Decode",
			Icon:        "img/undraw_docusaurus_tree.svg",
			Description: Text("Normalize Raydium, Orca Whirlpools, and Meteora activity into canonical swap/candle events for downstream consumers."),
		},
		{
			Title:       "Persist & Serve",
			Icon:        "img/undraw_docusaurus_react.svg",
			Description: Text("Ship data to ClickHouse and Parquet sinks, then serve query APIs and dashboards on top of consistent schemas."),
		},
	}
}
