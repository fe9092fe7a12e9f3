// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/echa/config"
	logpkg "github.com/echa/log"
	"github.com/gorilla/mux"

	"blockwatch.cc/procwatch/monitor"
	"blockwatch.cc/procwatch/proc"
)

var LoggerMap map[string]logpkg.Logger

func init() {
	register(SystemRequest{})
}

var _ RESTful = (*SystemRequest)(nil)

type SystemRequest struct{}

func (t SystemRequest) LastModified() time.Time {
	return time.Now().UTC()
}

func (t SystemRequest) Expires() time.Time {
	return time.Time{}
}

func (t SystemRequest) RESTPrefix() string {
	return "/system"
}

func (t SystemRequest) RESTPath(r *mux.Router) string {
	return ""
}

func (t SystemRequest) RegisterDirectRoutes(r *mux.Router) error {
	return nil
}

func (t SystemRequest) RegisterRoutes(r *mux.Router) error {
	r.HandleFunc("/cpu", C(GetCpuStat)).Methods("GET")
	r.HandleFunc("/disks", C(GetDiskStats)).Methods("GET")
	r.HandleFunc("/uptime", C(GetUptime)).Methods("GET")
	r.HandleFunc("/history", C(ListHistory)).Methods("GET")
	r.HandleFunc("/sysstat", C(GetSystemStats)).Methods("GET")
	r.HandleFunc("/config", C(GetConfig)).Methods("GET")
	r.HandleFunc("/aliases", C(GetAliases)).Methods("GET")
	r.HandleFunc("/log/{subsystem}/{level}", C(UpdateLog)).Methods("PUT")
	return nil
}

// lastSample returns the most recent monitor sample or fails the call
// with 503 while the sampler has not produced one yet.
func lastSample(ctx *ApiContext) *monitor.Sample {
	m := ctx.Monitor
	if m == nil {
		panic(EServiceUnavailable(EC_SERVER, "monitor disabled", nil))
	}
	s := m.Last()
	if s == nil {
		panic(EServiceUnavailable(EC_RESOURCE_STATE_UNEXPECTED, "waiting for first sample", nil))
	}
	return s
}

func currentUsage(ctx *ApiContext) *monitor.Usage {
	u, err := ctx.Monitor.Usage()
	if err != nil {
		panic(EServiceUnavailable(EC_RESOURCE_STATE_UNEXPECTED, "rates need two samples", err))
	}
	return u
}

type CpuRequest struct {
	WithUsage bool `schema:"usage"`
}

type CpuResponse struct {
	Timestamp time.Time      `json:"time"`
	Stat      *proc.Stat     `json:"stat"`
	Usage     *monitor.Usage `json:"usage,omitempty"`
	expires   time.Time      `json:"-"`
}

func (r CpuResponse) LastModified() time.Time {
	return r.Timestamp
}

func (r CpuResponse) Expires() time.Time {
	return r.expires
}

func GetCpuStat(ctx *ApiContext) (interface{}, int) {
	args := &CpuRequest{}
	ctx.ParseRequestArgs(args)
	s := lastSample(ctx)
	resp := &CpuResponse{
		Timestamp: s.Timestamp,
		Stat:      s.Stat,
		expires:   s.Timestamp.Add(ctx.Monitor.Interval()),
	}
	if args.WithUsage {
		resp.Usage = currentUsage(ctx)
	}
	return resp, http.StatusOK
}

type DiskRequest struct {
	Device    string `schema:"device"`
	WithRates bool   `schema:"rates"`
}

type DiskInfo struct {
	proc.DiskStat
	Alias *monitor.Alias    `json:"alias,omitempty"`
	Rate  *monitor.DiskRate `json:"rate,omitempty"`
}

type DiskResponse struct {
	Timestamp time.Time   `json:"time"`
	Disks     []*DiskInfo `json:"disks"`
	expires   time.Time   `json:"-"`
}

func (r DiskResponse) LastModified() time.Time {
	return r.Timestamp
}

func (r DiskResponse) Expires() time.Time {
	return r.expires
}

func GetDiskStats(ctx *ApiContext) (interface{}, int) {
	args := &DiskRequest{}
	ctx.ParseRequestArgs(args)
	s := lastSample(ctx)

	names := make([]string, 0, len(s.Disks))
	if args.Device != "" {
		if _, ok := s.Disks[args.Device]; !ok {
			panic(ENotFound(EC_RESOURCE_NOTFOUND, fmt.Sprintf("unknown device '%s'", args.Device), nil))
		}
		names = append(names, args.Device)
	} else {
		for n := range s.Disks {
			names = append(names, n)
		}
		sort.Strings(names)
	}

	var rates map[string]monitor.DiskRate
	if args.WithRates {
		rates = currentUsage(ctx).Disks
	}

	aliases := ctx.Monitor.Aliases()
	resp := &DiskResponse{
		Timestamp: s.Timestamp,
		Disks:     make([]*DiskInfo, 0, len(names)),
		expires:   s.Timestamp.Add(ctx.Monitor.Interval()),
	}
	for _, n := range names {
		info := &DiskInfo{DiskStat: s.Disks[n]}
		if a, ok := aliases.Lookup(n); ok {
			info.Alias = &a
		}
		if r, ok := rates[n]; ok {
			info.Rate = &r
		}
		resp.Disks = append(resp.Disks, info)
	}
	return resp, http.StatusOK
}

type UptimeResponse struct {
	Timestamp time.Time    `json:"time"`
	Uptime    *proc.Uptime `json:"uptime"`
	Booted    time.Time    `json:"booted"`
	expires   time.Time    `json:"-"`
}

func (r UptimeResponse) LastModified() time.Time {
	return r.Timestamp
}

func (r UptimeResponse) Expires() time.Time {
	return r.expires
}

func GetUptime(ctx *ApiContext) (interface{}, int) {
	s := lastSample(ctx)
	resp := &UptimeResponse{
		Timestamp: s.Timestamp,
		Uptime:    s.Uptime,
		Booted:    s.Timestamp.Add(-s.Uptime.Up),
		expires:   s.Timestamp.Add(ctx.Monitor.Interval()),
	}
	return resp, http.StatusOK
}

type HistoryRequest struct {
	Since string `schema:"since"`
	Limit uint   `schema:"limit"`
}

// parseSinceTime accepts unix seconds or RFC3339.
func parseSinceTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	panic(EBadRequest(EC_PARAM_INVALID, fmt.Sprintf("invalid time '%s'", s), nil))
}

func ListHistory(ctx *ApiContext) (interface{}, int) {
	args := &HistoryRequest{}
	ctx.ParseRequestArgs(args)
	if ctx.Monitor == nil {
		panic(EServiceUnavailable(EC_SERVER, "monitor disabled", nil))
	}
	hist := ctx.Monitor.History()
	if hist == nil {
		panic(EServiceUnavailable(EC_SERVER, "history disabled", nil))
	}
	since := parseSinceTime(args.Since)
	limit := ctx.Cfg.ClampList(args.Limit)

	var (
		count int
		last  time.Time
	)

	start := time.Now()
	ctx.Log.Tracef("Streaming max %d samples since %s", limit, since)
	defer func() {
		ctx.Log.Tracef("Streamed %d samples in %s", count, time.Since(start))
	}()

	// prepare response stream
	ctx.StreamResponseHeaders(http.StatusOK, jsonContentType)

	enc := json.NewEncoder(ctx.ResponseWriter)
	enc.SetIndent("", "")
	enc.SetEscapeHTML(false)

	// open JSON array
	io.WriteString(ctx.ResponseWriter, "[")
	// close JSON array on panic
	defer func() {
		if e := recover(); e != nil {
			io.WriteString(ctx.ResponseWriter, "]")
			panic(e)
		}
	}()

	// walk the store and stream results
	var needComma bool
	err := hist.Walk(since, int(limit), func(s *monitor.Sample) error {
		if needComma {
			io.WriteString(ctx.ResponseWriter, ",")
		} else {
			needComma = true
		}
		if err := enc.Encode(s); err != nil {
			return err
		}
		count++
		last = s.Timestamp
		return nil
	})
	// close JSON bracket
	io.WriteString(ctx.ResponseWriter, "]")
	ctx.Log.Tracef("JSON encoded %d samples", count)

	// without new records, cursor remains empty
	var cursor string
	if !last.IsZero() {
		cursor = strconv.FormatInt(last.UnixMilli(), 10)
	}

	// write error, cursor and count as http trailer
	ctx.StreamTrailer(cursor, count, err)

	// streaming return
	return nil, -1
}

func GetSystemStats(ctx *ApiContext) (interface{}, int) {
	s, err := GetSysStat(ctx.Context)
	if err != nil {
		panic(EInternal(EC_SERVER, "sysstat failed", err))
	}
	if ctx.Monitor != nil {
		s.Sampler = ctx.Monitor.Status()
	}
	return s, http.StatusOK
}

func GetConfig(ctx *ApiContext) (interface{}, int) {
	return config.All(), http.StatusOK
}

type AliasesResponse struct {
	Aliases  *monitor.AliasSet `json:"aliases"`
	modified time.Time         `json:"-"`
	expires  time.Time         `json:"-"`
}

func (r AliasesResponse) LastModified() time.Time {
	return r.modified
}

func (r AliasesResponse) Expires() time.Time {
	return r.expires
}

func GetAliases(ctx *ApiContext) (interface{}, int) {
	if ctx.Monitor == nil {
		panic(EServiceUnavailable(EC_SERVER, "monitor disabled", nil))
	}
	aliases := ctx.Monitor.Aliases()
	if aliases == nil {
		aliases = monitor.NewAliasSet()
	}
	resp := &AliasesResponse{
		Aliases:  aliases,
		modified: ctx.Now,
		expires:  ctx.Now.Add(maxCacheExpires),
	}
	return resp, http.StatusOK
}

func UpdateLog(ctx *ApiContext) (interface{}, int) {
	sub, _ := mux.Vars(ctx.Request)["subsystem"]
	level, _ := mux.Vars(ctx.Request)["level"]
	lvl := logpkg.ParseLevel(level)
	if lvl == logpkg.LevelInvalid {
		panic(EBadRequest(EC_PARAM_INVALID, fmt.Sprintf("undefined log level '%s'", level), nil))
	}
	var key string
	switch sub {
	case "main":
		key = "MAIN"
	case "proc":
		key = "PROC"
	case "monitor":
		key = "MONI"
	case "server":
		key = "SRVR"
	default:
		panic(EBadRequest(EC_PARAM_INVALID, fmt.Sprintf("undefined subsystem '%s'", sub), nil))
	}
	logger, ok := LoggerMap[key]
	if ok {
		logger.SetLevel(lvl)
	}
	return nil, http.StatusNoContent
}
