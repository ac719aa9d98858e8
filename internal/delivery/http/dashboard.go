package http

import "net/http"

// ServeDashboard serves the operator UI as a single embedded page. The page
// talks to the JSON API and keeps column visibility in browser localStorage
// under fixed per-table keys.
func ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="pl"><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Bot Admin</title>
<style>
:root{--bg:#0a0b10;--s:#10121a;--s2:#171a25;--bd:#262b3c;--tx:#ccd1dd;--tx2:#848da2;--ac:#3b82f6;--g:#10b981;--r:#ef4444;--o:#f59e0b}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:ui-monospace,SFMono-Regular,Menlo,monospace;background:var(--bg);color:var(--tx);min-height:100vh}
.app{max-width:1500px;margin:0 auto;padding:20px}
.hdr{display:flex;justify-content:space-between;align-items:center;padding:14px 0;border-bottom:1px solid var(--bd);margin-bottom:20px}
.hdr h1{font-size:20px}
.nav{display:flex;gap:4px;margin-bottom:20px;background:var(--s);border-radius:8px;padding:4px;border:1px solid var(--bd)}
.nav button{font:inherit;font-size:12px;padding:8px 16px;border:none;background:0;color:var(--tx2);cursor:pointer;border-radius:6px}
.nav button.on{background:var(--ac);color:#fff}
.sts{display:grid;grid-template-columns:repeat(auto-fit,minmax(140px,1fr));gap:12px;margin-bottom:20px}
.st{background:var(--s);border:1px solid var(--bd);border-radius:8px;padding:12px 14px}
.st .v{font-size:22px;font-weight:700}.v.g{color:var(--g)}.v.r{color:var(--r)}
.st .l{font-size:10px;color:var(--tx2);text-transform:uppercase;margin-top:4px}
.pnl{background:var(--s);border:1px solid var(--bd);border-radius:10px;margin-bottom:18px;overflow:hidden}
.pnl-h{display:flex;gap:10px;align-items:center;padding:12px 16px;border-bottom:1px solid var(--bd);background:var(--s2);flex-wrap:wrap}
.pnl-h h2{font-size:14px;margin-right:auto}
.pnl-b{padding:12px 16px;overflow-x:auto}
input,select{font:inherit;font-size:12px;background:var(--s2);color:var(--tx);border:1px solid var(--bd);border-radius:6px;padding:6px 10px}
button.b{font:inherit;font-size:12px;padding:6px 12px;border:1px solid var(--bd);background:var(--s2);color:var(--tx);border-radius:6px;cursor:pointer}
button.b:hover{border-color:var(--ac)}
button.b.pri{background:var(--ac);border-color:var(--ac);color:#fff}
button.b.danger{color:var(--r)}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;font-size:10px;color:var(--tx2);text-transform:uppercase;padding:8px 10px;border-bottom:1px solid var(--bd);cursor:pointer;white-space:nowrap}
th.nosort{cursor:default}
td{padding:8px 10px;border-bottom:1px solid rgba(38,43,60,.5);white-space:nowrap}
.bg{display:inline-block;padding:2px 8px;border-radius:4px;font-size:10px;font-weight:600}
.bg-run{background:rgba(16,185,129,.15);color:var(--g)}
.bg-stop{background:rgba(132,141,162,.15);color:var(--tx2)}
.bg-err{background:rgba(239,68,68,.15);color:var(--r)}
.pag{display:flex;gap:8px;align-items:center;padding:10px 16px;border-top:1px solid var(--bd);font-size:12px;color:var(--tx2)}
.cols{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:4px;padding:12px 16px;border-bottom:1px solid var(--bd);background:var(--s2);font-size:12px}
.cols label{display:flex;gap:6px;align-items:center;color:var(--tx2)}
.err{background:rgba(239,68,68,.1);border:1px solid rgba(239,68,68,.3);color:var(--r);padding:10px 14px;border-radius:8px;margin-bottom:14px;font-size:12px}
.mo{position:fixed;inset:0;background:rgba(0,0,0,.7);display:flex;align-items:center;justify-content:center;z-index:100}
.md{background:var(--s);border:1px solid var(--bd);border-radius:12px;padding:22px;width:640px;max-width:94vw;max-height:90vh;overflow-y:auto}
.md h2{font-size:16px;margin-bottom:14px}
.frm{display:grid;grid-template-columns:1fr 1fr;gap:10px}
.frm label{display:flex;flex-direction:column;gap:4px;font-size:11px;color:var(--tx2)}
.frm .full{grid-column:1/-1}
.frm .chk{flex-direction:row;align-items:center}
.actions{display:flex;gap:8px;justify-content:flex-end;margin-top:16px}
.login{max-width:380px;margin:80px auto;background:var(--s);border:1px solid var(--bd);border-radius:12px;padding:24px;display:flex;flex-direction:column;gap:12px}
.expand td{background:var(--s2)}
a.lnk{color:var(--ac);cursor:pointer}
</style></head><body>
<div class="app" id="app"></div>
<script>
'use strict';

const TOKEN_KEY = 'botadmin-token';
const state = {
  tab: 'trades',
  error: null,
  trades: [], tradeStats: null,
  sessions: [], sessionStats: null,
  overview: [], bots: [], servers: [],
  columns: {},          // table name -> {storageKey, order, defaults, arrayFormat}
  visible: {},          // table name -> {col: bool}
  tables: {},           // table name -> {search, sortKey, sortDir, page}
  expanded: new Set(),
  modal: null           // {mode: 'add'|'edit'|'copy', bot, killPrevious}
};

function token() { return localStorage.getItem(TOKEN_KEY) || ''; }

async function api(path, opts) {
  opts = opts || {};
  opts.headers = Object.assign({'Authorization': 'Bearer ' + token()}, opts.headers || {});
  const res = await fetch(path, opts);
  if (res.status === 401) { renderLogin(); throw new Error('Unauthorized'); }
  const body = await res.json().catch(() => ({}));
  if (!res.ok) { throw new Error(body.error || ('HTTP ' + res.status)); }
  return body;
}

// Column visibility: same keys and formats the tables always used.
function loadVisible(table) {
  const meta = state.columns[table];
  const out = Object.assign({}, meta.defaults);
  const raw = localStorage.getItem(meta.storageKey);
  if (!raw) return out;
  try {
    const parsed = JSON.parse(raw);
    if (meta.arrayFormat) {
      if (!Array.isArray(parsed)) throw new Error('expected array');
      for (const k of Object.keys(out)) out[k] = false;
      for (const k of parsed) if (k in out) out[k] = true;
    } else {
      for (const k of Object.keys(parsed)) if (k in out) out[k] = parsed[k];
    }
  } catch (e) {
    console.error('Błąd parsowania kolumn z localStorage:', e);
    return Object.assign({}, meta.defaults);
  }
  return out;
}

function saveVisible(table) {
  const meta = state.columns[table];
  const vis = state.visible[table];
  const payload = meta.arrayFormat
    ? meta.order.filter(k => vis[k])
    : vis;
  localStorage.setItem(meta.storageKey, JSON.stringify(payload));
}

function tableState(name) {
  if (!state.tables[name]) state.tables[name] = {search: '', sortKey: '', sortDir: '', page: 1};
  return state.tables[name];
}

// filter -> sort -> paginate, 50 rows per page, nulls last
const PAGE_SIZE = 50;

function applyTable(rows, ts, searchKeys, getValue) {
  let out = rows.slice();
  const s = ts.search.trim().toLowerCase();
  if (s) {
    out = out.filter(r => searchKeys.some(k => {
      const v = getValue(r, k);
      return v !== null && v !== undefined && String(v).toLowerCase().includes(s);
    }));
  }
  if (ts.sortKey && ts.sortDir) {
    const dir = ts.sortDir === 'desc' ? -1 : 1;
    out.sort((a, b) => {
      const av = getValue(a, ts.sortKey), bv = getValue(b, ts.sortKey);
      const an = av === null || av === undefined, bn = bv === null || bv === undefined;
      if (an || bn) return an && bn ? 0 : (an ? 1 : -1);
      if (typeof av === 'number' && typeof bv === 'number') return (av - bv) * dir;
      return String(av).toLowerCase().localeCompare(String(bv).toLowerCase()) * dir;
    });
  }
  const totalPages = Math.max(1, Math.ceil(out.length / PAGE_SIZE));
  if (ts.page > totalPages) ts.page = totalPages;
  if (ts.page < 1) ts.page = 1;
  return {rows: out.slice((ts.page - 1) * PAGE_SIZE, ts.page * PAGE_SIZE), total: out.length, totalPages};
}

function nextSortDir(d) { return d === '' ? 'asc' : (d === 'asc' ? 'desc' : ''); }

function clickSort(name, key) {
  const ts = tableState(name);
  if (ts.sortKey !== key) { ts.sortKey = key; ts.sortDir = 'asc'; }
  else {
    ts.sortDir = nextSortDir(ts.sortDir);
    if (!ts.sortDir) ts.sortKey = '';
  }
  render();
}

function setSearch(name, value) {
  const ts = tableState(name);
  ts.search = value;
  ts.page = 1;
  render();
}

function fmtDate(v) {
  if (!v) return '-';
  const d = new Date(v);
  return isNaN(d) ? '-' : d.toLocaleString('pl-PL');
}
function fmtNum(v, digits) {
  if (v === null || v === undefined) return '-';
  return Number(v).toFixed(digits === undefined ? 2 : digits);
}
function fmtPnl(v) {
  if (v === null || v === undefined) return '-';
  const n = Number(v);
  const cls = n >= 0 ? 'v g' : 'v r';
  return '<span class="' + cls + '" style="font-size:12px">' + (n >= 0 ? '+' : '') + n.toFixed(2) + '</span>';
}
function esc(s) {
  return String(s).replace(/[&<>"']/g, c => ({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c]));
}

function humanizeReason(t) {
  return t.split('_').map(w => w ? w[0].toUpperCase() + w.slice(1) : w).join(' ');
}
function skipSummary(metadata) {
  if (!metadata || !metadata.skip_reasons || !metadata.skip_reasons.length) return '';
  const rs = metadata.skip_reasons;
  if (rs.length > 1) return rs.length + ' reasons';
  const r = rs[0];
  const d = r.details || {};
  const threshold = d.threshold === undefined || d.threshold === null ? 'N/A' : d.threshold;
  const actual = d.actual_price !== undefined && d.actual_price !== null ? d.actual_price
    : (d.actual_spread !== undefined && d.actual_spread !== null ? d.actual_spread : 'N/A');
  return humanizeReason(r.type) + ' (threshold: ' + threshold + ', actual: ' + actual + ')';
}

async function loadAll() {
  state.error = null;
  try {
    const names = ['bots', 'market-sessions', 'all-trades', 'all-sessions', 'bot-instances'];
    for (const n of names) {
      if (!state.columns[n]) {
        state.columns[n] = await api('/api/columns/' + n);
        state.visible[n] = loadVisible(n);
      }
    }
    const [trades, tradeStats, sessions, sessionStats, overview, bots, servers] = await Promise.all([
      api('/api/trades'), api('/api/trades/stats'),
      api('/api/sessions'), api('/api/sessions/stats'),
      api('/api/overview'), api('/api/bots'), api('/api/servers')
    ]);
    state.trades = trades; state.tradeStats = tradeStats;
    state.sessions = sessions; state.sessionStats = sessionStats;
    state.overview = overview; state.bots = bots; state.servers = servers;
  } catch (e) {
    if (e.message === 'Unauthorized') return;
    state.error = e.message;
    state.trades = []; state.sessions = []; state.overview = []; state.bots = []; state.servers = [];
  }
  render();
}

function renderLogin() {
  document.getElementById('app').innerHTML =
    '<div class="login"><h1>Bot Admin</h1>' +
    '<p style="font-size:12px;color:var(--tx2)">Wklej token, aby się zalogować.</p>' +
    '<input id="tok" type="password" placeholder="ID token">' +
    '<button class="b pri" onclick="doLogin()">Zaloguj</button></div>';
}
function doLogin() {
  localStorage.setItem(TOKEN_KEY, document.getElementById('tok').value.trim());
  loadAll();
}
function doLogout() {
  localStorage.removeItem(TOKEN_KEY);
  renderLogin();
}

function colPanel(name) {
  const meta = state.columns[name];
  const vis = state.visible[name];
  const ts = tableState(name);
  if (!ts.showCols) return '';
  return '<div class="cols">' + meta.order.map(k =>
    '<label><input type="checkbox" ' + (vis[k] ? 'checked' : '') +
    ' onchange="toggleCol(\'' + name + '\',\'' + k + '\')"> ' + esc(k) + '</label>'
  ).join('') + '</div>';
}
function toggleCol(name, key) {
  state.visible[name][key] = !state.visible[name][key];
  saveVisible(name);
  render();
}
function toggleColPanel(name) {
  const ts = tableState(name);
  ts.showCols = !ts.showCols;
  render();
}

function headerCells(name, cols, vis) {
  const ts = tableState(name);
  return cols.filter(c => vis[c.key] !== false).map(c => {
    if (c.sortable === false) return '<th class="nosort">' + esc(c.label) + '</th>';
    const arrow = ts.sortKey === c.key ? (ts.sortDir === 'asc' ? ' ▲' : ' ▼') : '';
    return '<th onclick="clickSort(\'' + name + '\',\'' + c.key + '\')">' + esc(c.label) + arrow + '</th>';
  }).join('');
}

function pager(name, page, totalPages, total) {
  return '<div class="pag">' +
    '<button class="b" onclick="setPage(\'' + name + '\',' + (page - 1) + ')" ' + (page <= 1 ? 'disabled' : '') + '>&lt;</button>' +
    '<span>Strona ' + page + ' / ' + totalPages + ' (' + total + ')</span>' +
    '<button class="b" onclick="setPage(\'' + name + '\',' + (page + 1) + ')" ' + (page >= totalPages ? 'disabled' : '') + '>&gt;</button></div>';
}
function setPage(name, p) { tableState(name).page = p; render(); }

// ---- trades tab ----

const tradeCols = [
  {key: 'id', label: 'ID'}, {key: 'botInstance', label: 'Bot'},
  {key: 'sessionId', label: 'Session'}, {key: 'timestamp', label: 'Time'},
  {key: 'marketQuestion', label: 'Market'}, {key: 'type', label: 'Type'},
  {key: 'outcome', label: 'Outcome'}, {key: 'price', label: 'Price'},
  {key: 'size', label: 'Size'}, {key: 'shares', label: 'Shares'},
  {key: 'orderId', label: 'Order'}, {key: 'pnl', label: 'P&L'},
  {key: 'result', label: 'Result'}, {key: 'metadata', label: 'Info', sortable: false}
];

function tradeValue(t, key) {
  switch (key) {
    case 'id': return t.id;
    case 'botInstance': return t.bot_instance;
    case 'sessionId': return t.session_id;
    case 'timestamp': return t.timestamp;
    case 'marketQuestion': return t.market_question;
    case 'type': return t.type;
    case 'outcome': return t.outcome;
    case 'price': return t.price;
    case 'size': return t.size;
    case 'shares': return t.shares;
    case 'orderId': return t.order_id;
    case 'pnl': return t.pnl;
    case 'result': return t.result;
    default: return null;
  }
}

function tradeRow(t, vis) {
  const cells = [];
  for (const c of tradeCols) {
    if (vis[c.key] === false) continue;
    let html;
    switch (c.key) {
      case 'timestamp': html = fmtDate(t.timestamp); break;
      case 'price': html = fmtNum(t.price, 4); break;
      case 'size': html = fmtNum(t.size); break;
      case 'shares': html = fmtNum(t.shares); break;
      case 'pnl': html = fmtPnl(t.pnl); break;
      case 'metadata': html = esc(skipSummary(t.metadata)); break;
      default: {
        const v = tradeValue(t, c.key);
        html = v === null || v === undefined ? '-' : esc(v);
      }
    }
    cells.push('<td>' + html + '</td>');
  }
  return '<tr>' + cells.join('') + '</tr>';
}

function renderTrades() {
  const name = 'all-trades';
  const ts = tableState(name);
  const vis = state.visible[name];
  const res = applyTable(state.trades, ts, ['id', 'botInstance', 'marketQuestion', 'orderId'], tradeValue);
  const st = state.tradeStats || {};
  return statCards([
    ['Total', st.total], ['Buys', st.totalBuys], ['Sells', st.totalSells],
    ['Skips', st.totalSkips], ['P&L', fmtNum(st.totalPnL), st.totalPnL >= 0 ? 'g' : 'r'],
    ['Avg price', fmtNum(st.avgPrice, 4)], ['Win rate', (st.winRate || 0) + '%']
  ]) +
  '<div class="pnl"><div class="pnl-h"><h2>Transakcje</h2>' +
  searchBox(name, ts) + colsBtn(name) + '</div>' + colPanel(name) +
  '<div class="pnl-b"><table><thead><tr>' + headerCells(name, tradeCols, vis) + '</tr></thead><tbody>' +
  res.rows.map(t => tradeRow(t, vis)).join('') +
  '</tbody></table></div>' + pager(name, ts.page, res.totalPages, res.total) + '</div>';
}

// ---- sessions tab ----

const sessionCols = [
  {key: 'id', label: 'ID'}, {key: 'market', label: 'Market'},
  {key: 'bot', label: 'Bot'}, {key: 'sessionStart', label: 'Start'},
  {key: 'sessionEnd', label: 'End'}, {key: 'duration', label: 'Duration'},
  {key: 'trades', label: 'Trades'}, {key: 'totalPnl', label: 'P&L'},
  {key: 'initialYesPrice', label: 'Init YES'}, {key: 'finalYesPrice', label: 'Final YES'},
  {key: 'finalOutcome', label: 'Outcome'}
];

function sessionValue(s, key) {
  switch (key) {
    case 'id': return s.id;
    case 'market': return s.market_question;
    case 'bot': return s.bot_instance;
    case 'sessionStart': return s.session_start;
    case 'sessionEnd': return s.session_end;
    case 'duration': return s.session_end ? (new Date(s.session_end) - new Date(s.session_start)) : null;
    case 'trades': return (s.total_entries || 0) + (s.total_exits || 0) + (s.total_skips || 0);
    case 'totalPnl': return s.total_pnl;
    case 'initialYesPrice': return s.initial_yes_price;
    case 'finalYesPrice': return s.final_yes_price;
    case 'finalOutcome': return s.final_outcome;
    default: return null;
  }
}

function fmtDuration(ms) {
  if (ms === null || ms === undefined) return 'w toku';
  const sec = Math.round(ms / 1000);
  const m = Math.floor(sec / 60), s = sec % 60;
  return m + 'm ' + s + 's';
}

function sessionRow(s, vis, name) {
  const cells = [];
  for (const c of sessionCols) {
    if (vis[c.key] === false) continue;
    let html;
    switch (c.key) {
      case 'sessionStart': html = fmtDate(s.session_start); break;
      case 'sessionEnd': html = fmtDate(s.session_end); break;
      case 'duration': html = fmtDuration(sessionValue(s, 'duration')); break;
      case 'totalPnl': html = fmtPnl(s.total_pnl); break;
      case 'initialYesPrice': html = fmtNum(s.initial_yes_price, 4); break;
      case 'finalYesPrice': html = fmtNum(s.final_yes_price, 4); break;
      default: {
        const v = sessionValue(s, c.key);
        html = v === null || v === undefined ? '-' : esc(v);
      }
    }
    cells.push('<td>' + html + '</td>');
  }
  return '<tr>' + cells.join('') + '</tr>';
}

function renderSessions() {
  const name = 'market-sessions';
  const ts = tableState(name);
  const vis = state.visible[name];
  const res = applyTable(state.sessions, ts, ['id', 'market', 'bot'], sessionValue);
  const st = state.sessionStats || {};
  return statCards([
    ['Sessions', st.total], ['P&L', fmtNum(st.totalPnL), st.totalPnL >= 0 ? 'g' : 'r'],
    ['Avg duration', fmtDuration((st.avgDuration || 0) * 1000)], ['Trades', st.totalTrades]
  ]) +
  '<div class="pnl"><div class="pnl-h"><h2>Sesje rynkowe</h2>' +
  searchBox(name, ts) + colsBtn(name) + '</div>' + colPanel(name) +
  '<div class="pnl-b"><table><thead><tr>' + headerCells(name, sessionCols, vis) + '</tr></thead><tbody>' +
  res.rows.map(s => sessionRow(s, vis, name)).join('') +
  '</tbody></table></div>' + pager(name, ts.page, res.totalPages, res.total) + '</div>';
}

// ---- all (master-detail) tab ----

function renderAll() {
  const name = 'all-sessions';
  const ts = tableState(name);
  const vis = state.visible[name];
  const rows = state.overview.map(o => o.session);
  const res = applyTable(rows, ts, ['id', 'market', 'bot'], sessionValue);
  const byId = {};
  for (const o of state.overview) byId[o.session.id] = o.trades || [];

  let body = '';
  for (const s of res.rows) {
    body += '<tr><td><a class="lnk" onclick="toggleExpand(' + s.id + ')">' +
      (state.expanded.has(s.id) ? '▼' : '▶') + '</a></td>' +
      sessionRow(s, vis, name).slice(4);
    if (state.expanded.has(s.id)) {
      const kids = byId[s.id];
      body += '<tr class="expand"><td colspan="99">' +
        (kids.length
          ? '<table><thead><tr><th>ID</th><th>Time</th><th>Type</th><th>Outcome</th><th>Price</th><th>P&L</th><th>Info</th></tr></thead><tbody>' +
            kids.map(t => '<tr><td>' + t.id + '</td><td>' + fmtDate(t.timestamp) + '</td><td>' + esc(t.type) +
              '</td><td>' + (t.outcome ? esc(t.outcome) : '-') + '</td><td>' + fmtNum(t.price, 4) +
              '</td><td>' + fmtPnl(t.pnl) + '</td><td>' + esc(skipSummary(t.metadata)) + '</td></tr>').join('') +
            '</tbody></table>'
          : '<span style="color:var(--tx2)">Brak transakcji</span>') +
        '</td></tr>';
    }
  }

  return '<div class="pnl"><div class="pnl-h"><h2>Wszystko</h2>' +
    searchBox(name, ts) + colsBtn(name) + '</div>' + colPanel(name) +
    '<div class="pnl-b"><table><thead><tr><th class="nosort"></th>' + headerCells(name, sessionCols, vis) +
    '</tr></thead><tbody>' + body + '</tbody></table></div>' +
    pager(name, ts.page, res.totalPages, res.total) + '</div>';
}
function toggleExpand(id) {
  if (state.expanded.has(id)) state.expanded.delete(id); else state.expanded.add(id);
  render();
}

// ---- bots tab ----

const botCols = [
  {key: 'actions', label: 'Akcje', sortable: false},
  {key: 'id', label: 'ID'}, {key: 'instance_name', label: 'Instance Name'},
  {key: 'owner_id', label: 'Owner'}, {key: 'desired_state', label: 'Desired'},
  {key: 'actual_state', label: 'Actual'}, {key: 'server_id', label: 'Server'},
  {key: 'Nazwa', label: 'Strategy Name'}, {key: 'MARKET_INTERVAL', label: 'Interval'},
  {key: 'ORDER_SIZE', label: 'Order Size'}, {key: 'DRY_RUN', label: 'Dry Run'},
  {key: 'MOMENTUM_THRESHOLD', label: 'Momentum'}
];

function botValue(b, key) {
  const cfg = b.strategy_config || {};
  switch (key) {
    case 'id': return b.id;
    case 'instance_name': return b.instance_name;
    case 'owner_id': return b.owner_id;
    case 'desired_state': return b.desired_state;
    case 'actual_state': return b.actual_state;
    case 'server_id': return b.server_id;
    case 'Nazwa': return cfg.Nazwa;
    case 'MARKET_INTERVAL': return cfg.MARKET_INTERVAL;
    case 'ORDER_SIZE': return cfg.ORDER_SIZE;
    case 'DRY_RUN': return cfg.DRY_RUN ? 'Yes' : 'No';
    case 'MOMENTUM_THRESHOLD': return cfg.MOMENTUM_THRESHOLD;
    default: return null;
  }
}

function stateBadge(s) {
  const cls = s === 'running' ? 'bg-run' : (s === 'error' ? 'bg-err' : 'bg-stop');
  return '<span class="bg ' + cls + '">' + esc(s || '-') + '</span>';
}

function botRow(b, vis) {
  const cells = [];
  for (const c of botCols) {
    if (vis[c.key] === false) continue;
    let html;
    switch (c.key) {
      case 'actions':
        html = '<button class="b" onclick="toggleBot(' + b.id + ')">' +
          (b.desired_state === 'running' ? '⏹' : '▶') + '</button> ' +
          '<button class="b" onclick="openEdit(' + b.id + ')">✎</button> ' +
          '<button class="b" onclick="openCopy(' + b.id + ')">⧉</button> ' +
          '<button class="b danger" onclick="deleteBot(' + b.id + ')">✕</button>';
        break;
      case 'desired_state': html = stateBadge(b.desired_state); break;
      case 'actual_state': html = stateBadge(b.actual_state); break;
      default: {
        const v = botValue(b, c.key);
        html = v === null || v === undefined ? '-' : esc(v);
      }
    }
    cells.push('<td>' + html + '</td>');
  }
  return '<tr>' + cells.join('') + '</tr>';
}

function renderBots() {
  const name = 'bot-instances';
  const ts = tableState(name);
  const vis = state.visible[name];
  const res = applyTable(state.bots, ts, ['id', 'instance_name', 'owner_id', 'Nazwa'], botValue);
  const running = state.bots.filter(b => b.desired_state === 'running').length;

  let body;
  if (!state.bots.length) {
    body = '<tr><td colspan="99" style="color:var(--tx2)">Brak botów w bazie danych</td></tr>';
  } else {
    body = res.rows.map(b => botRow(b, vis)).join('');
  }

  return statCards([['Boty', state.bots.length], ['Uruchomione', running]]) +
    '<div class="pnl"><div class="pnl-h"><h2>Boty</h2>' +
    searchBox(name, ts) +
    '<button class="b pri" onclick="openAdd()">+ Dodaj bota</button>' + colsBtn(name) +
    '</div>' + colPanel(name) +
    '<div class="pnl-b"><table><thead><tr>' + headerCells(name, botCols, vis) + '</tr></thead><tbody>' +
    body + '</tbody></table></div>' + pager(name, ts.page, res.totalPages, res.total) + '</div>' +
    (state.modal ? renderModal() : '');
}

async function toggleBot(id) {
  try {
    const res = await api('/api/bots/toggle?id=' + id, {method: 'POST'});
    alert('✅ Bot ' + (res.data.desired_state === 'running' ? 'uruchomiony' : 'zatrzymany') + '!');
    await loadAll();
  } catch (e) {
    alert('❌ ' + e.message);
  }
}

async function deleteBot(id) {
  const bot = state.bots.find(b => b.id === id);
  if (!bot) return;
  if (!confirm('Czy na pewno chcesz usunąć bota "' + bot.instance_name + '"?')) return;
  try {
    await api('/api/bots?id=' + id, {method: 'DELETE'});
    alert('✅ Bot usunięty pomyślnie!');
    await loadAll();
  } catch (e) {
    alert('❌ Błąd: ' + e.message);
  }
}

function emptyForm() {
  return {crypto: '', interval: '', strategy: '', nazwa: '', desiredState: 'stopped', serverId: '',
    dryRun: 'true', strategyEnabled: 'true', strategyMode: 'momentum', buyOpposite: 'false',
    orderSize: '10', momentumThreshold: '0.25', momentumSec: '20',
    confirmationMethod: 'sustained', confirmationTolerance: '', entryThreshold: '',
    maxReversalEntryPrice: '', velocityMinTicks: '', velocityMinIncrease: '', maxSpread: '',
    warmupDelaySec: '', minTimeRemaining: '', maxReentries: '', exitPrice: '',
    exitBeforeCloseSec: '', stopLoss: '', aggressiveExitUnderbid: '', exitMaxRetries: '',
    exitPriceDecrement: ''};
}

function formFromBot(b) {
  const cfg = b.strategy_config || {};
  const f = emptyForm();
  f.nazwa = cfg.Nazwa || '';
  f.desiredState = b.desired_state;
  f.serverId = b.server_id || '';
  f.dryRun = cfg.DRY_RUN ? 'true' : 'false';
  f.strategyEnabled = cfg.STRATEGY_ENABLED ? 'true' : 'false';
  f.strategyMode = cfg.STRATEGY_MODE || 'momentum';
  f.buyOpposite = cfg.BUY_OPPOSITE ? 'true' : 'false';
  f.orderSize = String(cfg.ORDER_SIZE ?? '');
  f.momentumThreshold = String(cfg.MOMENTUM_THRESHOLD ?? '');
  f.momentumSec = String(cfg.MOMENTUM_CONFIRMATION_SEC ?? '');
  f.confirmationMethod = cfg.MOMENTUM_CONFIRMATION_METHOD || 'sustained';
  const opt = (v) => v === null || v === undefined ? '' : String(v);
  f.confirmationTolerance = opt(cfg.MOMENTUM_CONFIRMATION_TOLERANCE);
  f.entryThreshold = opt(cfg.ENTRY_THRESHOLD);
  f.maxReversalEntryPrice = opt(cfg.MAX_REVERSAL_ENTRY_PRICE);
  f.velocityMinTicks = opt(cfg.VELOCITY_MIN_TICKS);
  f.velocityMinIncrease = opt(cfg.VELOCITY_MIN_INCREASE);
  f.maxSpread = opt(cfg.MAX_SPREAD);
  f.warmupDelaySec = opt(cfg.WARMUP_DELAY_SEC);
  f.minTimeRemaining = opt(cfg.MIN_TIME_REMAINING);
  f.maxReentries = opt(cfg.MAX_REENTRIES);
  f.exitPrice = opt(cfg.EXIT_PRICE);
  f.exitBeforeCloseSec = opt(cfg.EXIT_BEFORE_CLOSE_SEC);
  f.stopLoss = opt(cfg.STOP_LOSS);
  f.aggressiveExitUnderbid = opt(cfg.AGGRESSIVE_EXIT_UNDERBID);
  f.exitMaxRetries = opt(cfg.EXIT_MAX_RETRIES);
  f.exitPriceDecrement = opt(cfg.EXIT_PRICE_DECREMENT);
  return f;
}

function openAdd() { state.modal = {mode: 'add', form: emptyForm(), killPrevious: false}; render(); }
function openEdit(id) {
  const b = state.bots.find(x => x.id === id);
  if (!b) return;
  state.modal = {mode: 'edit', botId: id, form: formFromBot(b)};
  render();
}
function openCopy(id) {
  const b = state.bots.find(x => x.id === id);
  if (!b) return;
  state.modal = {mode: 'copy', sourceBotId: id, form: formFromBot(b), killPrevious: false};
  render();
}
function closeModal() { state.modal = null; render(); }

function field(label, name, type, options) {
  const f = state.modal.form;
  if (options) {
    return '<label>' + label + '<select onchange="setField(\'' + name + '\',this.value)">' +
      options.map(o => '<option value="' + o[0] + '"' + (f[name] === o[0] ? ' selected' : '') + '>' + o[1] + '</option>').join('') +
      '</select></label>';
  }
  return '<label>' + label + '<input value="' + esc(f[name]) + '" onchange="setField(\'' + name + '\',this.value)"></label>';
}
function setField(name, v) { state.modal.form[name] = v; }

function renderModal() {
  const m = state.modal;
  const f = m.form;
  const title = m.mode === 'edit' ? 'Edytuj bota' : (m.mode === 'copy' ? 'Kopiuj bota' : 'Dodaj bota');
  const serverOpts = [['', '—']].concat(state.servers.map(s => {
    const full = s.desired_running >= s.available_slots;
    return [s.id, s.id + ' | ' + s.desired_running + '/' + s.available_slots + (full ? ' (pełny)' : '')];
  }));
  const namePart = m.mode === 'edit' ? '' :
    field('Crypto', 'crypto', null, [['', '—'], ['Bitcoin', 'Bitcoin'], ['Ethereum', 'Ethereum'], ['Solana', 'Solana'], ['XRP', 'XRP']]) +
    field('Interwał', 'interval', null, [['', '—'], ['5 minut', '5 minut'], ['15 minut', '15 minut'], ['1 godzina', '1 godzina'], ['4 godziny', '4 godziny']]) +
    field('Strategia', 'strategy');
  const killPart = m.mode === 'copy'
    ? '<label class="chk full"><input type="checkbox" ' + (m.killPrevious ? 'checked' : '') +
      ' onchange="state.modal.killPrevious=this.checked"> Zatrzymaj poprzedniego bota</label>'
    : '';

  return '<div class="mo" onclick="if(event.target===this)closeModal()"><div class="md"><h2>' + title + '</h2>' +
    '<div class="frm">' + namePart +
    field('Nazwa', 'nazwa') +
    field('Desired state', 'desiredState', null, [['stopped', 'stopped'], ['running', 'running']]) +
    field('Server ID', 'serverId', null, serverOpts) +
    field('Dry run', 'dryRun', null, [['true', 'true'], ['false', 'false']]) +
    field('Strategy enabled', 'strategyEnabled', null, [['true', 'true'], ['false', 'false']]) +
    field('Strategy mode', 'strategyMode', null, [['momentum', 'momentum'], ['reversal', 'reversal']]) +
    field('Buy opposite', 'buyOpposite', null, [['false', 'false'], ['true', 'true']]) +
    field('Order size', 'orderSize') +
    field('Momentum threshold', 'momentumThreshold') +
    field('Momentum confirmation sec', 'momentumSec') +
    field('Confirmation method', 'confirmationMethod', null, [['sustained', 'sustained'], ['velocity', 'velocity']]) +
    field('Confirmation tolerance', 'confirmationTolerance') +
    field('Entry threshold', 'entryThreshold') +
    field('Max reversal entry price', 'maxReversalEntryPrice') +
    field('Velocity min ticks', 'velocityMinTicks') +
    field('Velocity min increase', 'velocityMinIncrease') +
    field('Max spread', 'maxSpread') +
    field('Warmup delay sec', 'warmupDelaySec') +
    field('Min time remaining', 'minTimeRemaining') +
    field('Max reentries', 'maxReentries') +
    field('Exit price', 'exitPrice') +
    field('Exit before close sec', 'exitBeforeCloseSec') +
    field('Stop loss', 'stopLoss') +
    field('Aggressive exit underbid', 'aggressiveExitUnderbid') +
    field('Exit max retries', 'exitMaxRetries') +
    field('Exit price decrement', 'exitPriceDecrement') +
    killPart + '</div>' +
    '<div class="actions"><button class="b" onclick="closeModal()">Anuluj</button>' +
    '<button class="b pri" onclick="submitBot()">Zapisz</button></div></div></div>';
}

async function submitBot() {
  const m = state.modal;
  try {
    if (m.mode === 'edit') {
      await api('/api/bots?id=' + m.botId, {method: 'PUT', body: JSON.stringify(m.form)});
      alert('✅ Bot zaktualizowany pomyślnie!');
    } else {
      const payload = Object.assign({}, m.form);
      if (m.mode === 'copy') {
        payload.killPreviousBot = m.killPrevious;
        payload.sourceBotId = m.sourceBotId;
      }
      const res = await api('/api/bots', {method: 'POST', body: JSON.stringify(payload)});
      if (res.warning) alert('⚠️ Ostrzeżenie: ' + res.warning);
      alert('✅ Bot dodany pomyślnie!');
    }
    state.modal = null;
    await loadAll();
  } catch (e) {
    alert('❌ Błąd: ' + e.message);
  }
}

// ---- servers tab ----

function renderServers() {
  return '<div class="pnl"><div class="pnl-h"><h2>Serwery</h2></div><div class="pnl-b">' +
    '<table><thead><tr><th class="nosort">ID</th><th class="nosort">Uruchomione</th><th class="nosort">Sloty</th><th class="nosort">Status</th></tr></thead><tbody>' +
    (state.servers.length
      ? state.servers.map(s => {
          const full = s.desired_running >= s.available_slots;
          return '<tr><td>' + esc(s.id) + '</td><td>' + s.desired_running + '</td><td>' + s.available_slots +
            '</td><td>' + (full ? '<span class="bg bg-err">pełny</span>' : '<span class="bg bg-run">wolny</span>') + '</td></tr>';
        }).join('')
      : '<tr><td colspan="4" style="color:var(--tx2)">Brak dostępnych serwerów</td></tr>') +
    '</tbody></table></div></div>';
}

// ---- shell ----

function statCards(items) {
  return '<div class="sts">' + items.map(it =>
    '<div class="st"><div class="v ' + (it[2] || '') + '">' + (it[1] === undefined || it[1] === null ? '-' : it[1]) +
    '</div><div class="l">' + it[0] + '</div></div>').join('') + '</div>';
}
function searchBox(name, ts) {
  return '<input placeholder="Szukaj..." value="' + esc(ts.search) + '" oninput="setSearch(\'' + name + '\',this.value)">';
}
function colsBtn(name) {
  return '<button class="b" onclick="toggleColPanel(\'' + name + '\')">Kolumny</button>';
}
function setTab(t) { state.tab = t; render(); }

function render() {
  if (!Object.keys(state.columns).length) return;
  const tabs = [['trades', 'Transakcje'], ['sessions', 'Sesje'], ['all', 'Wszystko'], ['bots', 'Boty'], ['servers', 'Serwery']];
  let body;
  switch (state.tab) {
    case 'sessions': body = renderSessions(); break;
    case 'all': body = renderAll(); break;
    case 'bots': body = renderBots(); break;
    case 'servers': body = renderServers(); break;
    default: body = renderTrades();
  }
  document.getElementById('app').innerHTML =
    '<div class="hdr"><h1>Bot Admin</h1><button class="b" onclick="doLogout()">Wyloguj</button></div>' +
    '<div class="nav">' + tabs.map(t =>
      '<button class="' + (state.tab === t[0] ? 'on' : '') + '" onclick="setTab(\'' + t[0] + '\')">' + t[1] + '</button>').join('') +
    '</div>' +
    (state.error ? '<div class="err">Błąd pobierania danych: ' + esc(state.error) + '</div>' : '') +
    body;
}

loadAll();
</script></body></html>`
