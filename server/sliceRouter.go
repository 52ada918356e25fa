package server

import (
	"context"
	"math"
	"net"
)

const abortIndex int8 = math.MaxInt8 / 2

type TcpHandlerFunc func(*TcpSliceRouterContext)

// TcpSliceRouter chains middleware handlers over one tcp connection.
type TcpSliceRouter struct {
	group *TcpSliceGroup
}

type TcpSliceGroup struct {
	*TcpSliceRouter
	handlers []TcpHandlerFunc
}

type TcpSliceRouterContext struct {
	conn net.Conn
	Ctx  context.Context
	*TcpSliceGroup
	index int8
}

func newTcpSliceRouterContext(conn net.Conn, r *TcpSliceRouter, ctx context.Context) *TcpSliceRouterContext {
	newTcpSliceGroup := &TcpSliceGroup{}
	*newTcpSliceGroup = *r.group
	c := &TcpSliceRouterContext{conn: conn, TcpSliceGroup: newTcpSliceGroup, Ctx: ctx}
	c.Reset()
	return c
}

func (c *TcpSliceRouterContext) Get(key interface{}) interface{} {
	return c.Ctx.Value(key)
}

func (c *TcpSliceRouterContext) Set(key, val interface{}) {
	c.Ctx = context.WithValue(c.Ctx, key, val)
}

func (c *TcpSliceRouterContext) GetString(key interface{}) string {
	if s, ok := c.Get(key).(string); ok {
		return s
	}
	return ""
}

func (c *TcpSliceRouterContext) GetConn() net.Conn {
	return c.conn
}

func (c *TcpSliceRouterContext) Write(b []byte) error {
	_, err := c.conn.Write(b)
	return err
}

type TcpSliceRouterHandler struct {
	router *TcpSliceRouter
}

func (w *TcpSliceRouterHandler) ServeTCP(ctx context.Context, conn net.Conn) {
	c := newTcpSliceRouterContext(conn, w.router, ctx)
	c.Reset()
	c.Next()
}

func NewTcpSliceRouterHandler(router *TcpSliceRouter) *TcpSliceRouterHandler {
	return &TcpSliceRouterHandler{router: router}
}

func NewTcpSliceRouter() *TcpSliceRouter {
	r := &TcpSliceRouter{}
	r.group = &TcpSliceGroup{TcpSliceRouter: r}
	return r
}

func (r *TcpSliceRouter) Group() *TcpSliceGroup {
	return r.group
}

func (g *TcpSliceGroup) Use(middlewares ...TcpHandlerFunc) *TcpSliceGroup {
	g.handlers = append(g.handlers, middlewares...)
	return g
}

func (c *TcpSliceRouterContext) Next() {
	c.index++
	for c.index < int8(len(c.handlers)) {
		c.handlers[c.index](c)
		c.index++
	}
}

func (c *TcpSliceRouterContext) Abort() {
	c.index = abortIndex
}

func (c *TcpSliceRouterContext) IsAborted() bool {
	return c.index >= abortIndex
}

func (c *TcpSliceRouterContext) Reset() {
	c.index = -1
}
