package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MaxRequestBytes bounds REST request bodies.
const MaxRequestBytes = 16 << 20

type route struct {
	method  string
	pattern string
	handle  func(g *gateway, w http.ResponseWriter, r *http.Request, params map[string]string)
}

var routes = []route{
	{http.MethodPost, "/v1/batches", (*gateway).registerBatch},
	{http.MethodGet, "/v1/batches/{batch_id}", (*gateway).resolveBatch},
	{http.MethodPost, "/v1/batches/{batch_id}/events", (*gateway).appendEvent},
	{http.MethodPost, "/v1/batches/{batch_id}/grade", (*gateway).gradeBatch},
	{http.MethodGet, "/v1/batches/{batch_id}/verification", (*gateway).verifyBatch},
	{http.MethodGet, "/v1/batches/{batch_id}/label", (*gateway).exportLabel},
	{http.MethodPost, "/v1/symbols/decode", (*gateway).decodeSymbol},
	{http.MethodPost, "/v1/scans", (*gateway).recordScan},
	{http.MethodGet, "/v1/scans/stats", (*gateway).scanStats},
	{http.MethodGet, "/v1/admin/anomalies", (*gateway).listAnomalies},
	{http.MethodGet, "/v1/admin/overview", (*gateway).registryOverview},
	{http.MethodGet, "/v1/health", (*gateway).health},
}

type gateway struct {
	server BatchRegistryServer
	mux    *runtime.ServeMux
}

// NewGateway serves the registry as REST on a grpc-gateway mux. Requests are
// handled in process by server, without a gRPC hop.
func NewGateway(server BatchRegistryServer, opts ...runtime.ServeMuxOption) (*runtime.ServeMux, error) {
	opts = append([]runtime.ServeMuxOption{
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONBuiltin{}),
	}, opts...)
	g := &gateway{server: server, mux: runtime.NewServeMux(opts...)}

	for _, rt := range routes {
		rt := rt
		err := g.mux.HandlePath(rt.method, rt.pattern, func(w http.ResponseWriter, r *http.Request, params map[string]string) {
			rt.handle(g, w, r, params)
		})
		if err != nil {
			return nil, fmt.Errorf("register route %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return g.mux, nil
}

func (g *gateway) registerBatch(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req RegisterBatchRequest
	if !g.decode(w, r, &req) {
		return
	}
	resp, err := g.server.RegisterBatch(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) resolveBatch(w http.ResponseWriter, r *http.Request, params map[string]string) {
	resp, err := g.server.ResolveBatch(r.Context(), &ResolveBatchRequest{BatchID: params["batch_id"]})
	g.respond(w, r, resp, err)
}

func (g *gateway) appendEvent(w http.ResponseWriter, r *http.Request, params map[string]string) {
	req := AppendEventRequest{BatchID: params["batch_id"]}
	if !g.decode(w, r, &req.Event) {
		return
	}
	resp, err := g.server.AppendEvent(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) gradeBatch(w http.ResponseWriter, r *http.Request, params map[string]string) {
	req := GradeBatchRequest{BatchID: params["batch_id"]}
	if !g.decode(w, r, &req.Grade) {
		return
	}
	resp, err := g.server.GradeBatch(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) verifyBatch(w http.ResponseWriter, r *http.Request, params map[string]string) {
	req := VerifyBatchRequest{BatchID: params["batch_id"]}
	if source := r.URL.Query().Get("source"); source != "" {
		req.Source = model.ScanSource(source)
	}
	resp, err := g.server.VerifyBatch(r.Context(), &req)
	g.respond(w, r, resp, err)
}

// exportLabel answers with the PNG itself rather than a JSON envelope.
func (g *gateway) exportLabel(w http.ResponseWriter, r *http.Request, params map[string]string) {
	req := ExportLabelRequest{BatchID: params["batch_id"], Level: r.URL.Query().Get("level")}
	if !g.queryInt(w, r, "size", &req.Size) {
		return
	}

	resp, err := g.server.ExportLabel(r.Context(), &req)
	if err != nil {
		g.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", resp.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.PNG)))
	_, _ = w.Write(resp.PNG)
}

func (g *gateway) decodeSymbol(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req DecodeSymbolRequest
	if !g.decode(w, r, &req) {
		return
	}
	resp, err := g.server.DecodeSymbol(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) recordScan(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req RecordScanRequest
	if !g.decode(w, r, &req) {
		return
	}
	resp, err := g.server.RecordScan(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) scanStats(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.server.ScanStats(r.Context(), &ScanStatsRequest{})
	g.respond(w, r, resp, err)
}

func (g *gateway) listAnomalies(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	q := r.URL.Query()
	req := ListAnomaliesRequest{Severity: q.Get("severity"), Search: q.Get("search")}
	if !g.queryInt(w, r, "limit", &req.Limit) {
		return
	}
	resp, err := g.server.ListAnomalies(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) registryOverview(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req RegistryOverviewRequest
	if !g.queryInt(w, r, "limit", &req.Limit) {
		return
	}
	resp, err := g.server.RegistryOverview(r.Context(), &req)
	g.respond(w, r, resp, err)
}

func (g *gateway) health(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.server.Health(r.Context(), &HealthRequest{})
	g.respond(w, r, resp, err)
}

// queryInt leaves dst alone when the parameter is absent.
func (g *gateway) queryInt(w http.ResponseWriter, r *http.Request, name string, dst *int) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		g.fail(w, r, status.Errorf(codes.InvalidArgument, "%s %q is not an integer", name, raw))
		return false
	}
	*dst = v
	return true
}

func (g *gateway) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	inbound, _ := runtime.MarshalerForRequest(g.mux, r)
	body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := inbound.NewDecoder(body).Decode(v); err != nil {
		g.fail(w, r, status.Errorf(codes.InvalidArgument, "decode request body: %v", err))
		return false
	}
	return true
}

func (g *gateway) respond(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if err != nil {
		g.fail(w, r, err)
		return
	}
	_, outbound := runtime.MarshalerForRequest(g.mux, r)
	body, err := outbound.Marshal(resp)
	if err != nil {
		g.fail(w, r, status.Errorf(codes.Internal, "marshal response: %v", err))
		return
	}
	w.Header().Set("Content-Type", outbound.ContentType(resp))
	_, _ = w.Write(body)
}

func (g *gateway) fail(w http.ResponseWriter, r *http.Request, err error) {
	_, outbound := runtime.MarshalerForRequest(g.mux, r)
	runtime.HTTPError(r.Context(), g.mux, outbound, w, r, toStatus(err))
}
