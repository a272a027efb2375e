package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/source"
	"github.com/lukman83/otzyv-scrap/internal/yamaps"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer) {
	// scrape_reviews
	scrapeTool := mcp.NewTool("scrape_reviews",
		mcp.WithDescription("Scrape customer reviews from a Yandex Maps organization listing URL"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Organization listing URL"),
		),
		mcp.WithString("source",
			mcp.Description("Review source (default: yandex_maps)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max reviews to return (default: all)"),
		),
		mcp.WithNumber("timeout_ms",
			mcp.Description("Per-wait timeout in milliseconds (default: 45000)"),
		),
		mcp.WithBoolean("headless",
			mcp.Description("Run the browser headless (default: true)"),
		),
	)
	s.AddTool(scrapeTool, handleScrapeReviews)

	// extract_org_id
	orgIDTool := mcp.NewTool("extract_org_id",
		mcp.WithDescription("Derive the organization id from a Yandex Maps listing URL"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Organization listing URL"),
		),
	)
	s.AddTool(orgIDTool, handleExtractOrgID)

	// list_sources
	listTool := mcp.NewTool("list_sources",
		mcp.WithDescription("List registered review sources"),
	)
	s.AddTool(listTool, handleListSources)
}

func handleScrapeReviews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	sourceName := request.GetString("source", "yandex_maps")
	limit := request.GetInt("limit", 0)
	timeoutMS := request.GetInt("timeout_ms", 45_000)
	headless := request.GetBool("headless", true)

	scraper, err := source.Get(sourceName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("source error: %v", err)), nil
	}

	reviews, err := scraper.Reviews(ctx, url, source.Options{
		Headless: headless,
		Timeout:  time.Duration(timeoutMS) * time.Millisecond,
		Limit:    limit,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scrape error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(reviews, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleExtractOrgID(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	orgID := yamaps.ExtractOrgID(yamaps.NormalizeURL(url))
	if orgID == "" {
		return mcp.NewToolResultError("no organization id derivable from url"), nil
	}
	return mcp.NewToolResultText(orgID), nil
}

func handleListSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(source.List(), "\n")), nil
}
