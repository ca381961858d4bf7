// Copyright (c) 2026 hkopenai and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/hkopenai/hkmisc/internal/auction"
)

// ─── get_government_auction_data ──────────────────────────────────────────────

const toolGetAuctionData = "get_government_auction_data"

func (s *Server) toolGetAuctionData() mcpsrv.ServerTool {
	tool := mcplib.NewTool(toolGetAuctionData,
		mcplib.WithDescription("Auction data of confiscated, used/surplus, and unclaimed stores from Government Logistics Department Hong Kong."),
		mcplib.WithNumber("start_year",
			mcplib.Description("Starting year for the data range."),
			mcplib.Required(),
		),
		mcplib.WithNumber("start_month",
			mcplib.Description("Starting month for the data range (1-12)."),
			mcplib.Required(),
			mcplib.Min(1),
			mcplib.Max(12),
		),
		mcplib.WithNumber("end_year",
			mcplib.Description("Ending year for the data range."),
			mcplib.Required(),
		),
		mcplib.WithNumber("end_month",
			mcplib.Description("Ending month for the data range (1-12)."),
			mcplib.Required(),
			mcplib.Min(1),
			mcplib.Max(12),
		),
		mcplib.WithString("language",
			mcplib.Description("Language code for the data ('EN', 'TC', 'SC')."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithIdempotentHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetAuctionData}
}

// queryFromRequest builds the query from the tool arguments.
func queryFromRequest(req mcplib.CallToolRequest) (auction.Query, error) {
	var q auction.Query
	for _, a := range []struct {
		name string
		dst  *int
	}{
		{"start_year", &q.StartYear},
		{"start_month", &q.StartMonth},
		{"end_year", &q.EndYear},
		{"end_month", &q.EndMonth},
	} {
		v, ok := intArg(req, a.name)
		if !ok {
			return auction.Query{}, fmt.Errorf("%s is required and must be a whole number", a.name)
		}
		*a.dst = v
	}
	lang, ok := stringArg(req, "language")
	if !ok || lang == "" {
		return auction.Query{}, errors.New("language is required")
	}
	q.Language = lang
	return q, nil
}

func (s *Server) handleGetAuctionData(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	lg := s.logger.With("call_id", uuid.NewString(), "tool", toolGetAuctionData)

	q, err := queryFromRequest(req)
	if err != nil {
		lg.WarnContext(ctx, "mcp: bad arguments", "error", err)
		return resultErr(fmt.Errorf("%s: %w", toolGetAuctionData, err)), nil
	}
	lg.InfoContext(ctx, "mcp: call", "query", q)

	res, err := s.svc.Get(ctx, q)
	if err != nil {
		lg.WarnContext(ctx, "mcp: invalid query", "error", err)
		return resultErr(fmt.Errorf("%s: %w", toolGetAuctionData, err)), nil
	}
	if res.IsError() {
		// relayed to the agent as data, like the records.
		lg.WarnContext(ctx, "mcp: upstream error", "error", res.Err.Error)
	} else {
		lg.InfoContext(ctx, "mcp: done", "records", len(res.Records))
	}

	result, err := resultJSON(res)
	if err != nil {
		return resultErr(fmt.Errorf("%s: serialise: %w", toolGetAuctionData, err)), nil
	}
	return result, nil
}
