// Package feed implements the client for the affiliate token feed.
//
// The feed is a single HTTP endpoint protected by Basic authentication. All
// tokens of a run are sent in one GET request as a comma separated TOKENS
// query parameter, and the feed answers with an XML document:
//
//	<FEED>
//	  <TOKEN PREFIX="0123456789abcdef0123456789abcdef">
//	    <SETUP OBJECT_ID="42" OBJECT_DESCRIPTION="Spring landing page"/>
//	    <USER USERNAME="alice"/>
//	  </TOKEN>
//	</FEED>
//
// Design decision: Enrichment is best effort. Client.Enrich logs every failure
// (transport error, 401, other status, malformed XML) and hands back an empty
// lookup so the report can still be written with blank enrichment columns.
// There are no retries; a failed request fails the whole batch.
package feed
