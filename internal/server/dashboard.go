package server

// DashboardHTML is the embedded single-page dashboard for Tempo.
// It connects via WebSocket and displays the live clock readings.
const DashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Tempo Dashboard</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, monospace;
    background: #0d1117; color: #c9d1d9; padding: 20px;
  }
  h1 { color: #58a6ff; margin-bottom: 4px; font-size: 1.5em; }
  .subtitle { color: #8b949e; margin-bottom: 20px; font-size: 0.9em; }
  .status-bar {
    display: flex; gap: 20px; margin-bottom: 20px; padding: 12px 16px;
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
  }
  .status-item { display: flex; flex-direction: column; }
  .status-label { font-size: 0.75em; color: #8b949e; text-transform: uppercase; }
  .status-value { font-size: 1.1em; font-weight: 600; }
  .status-value.connected { color: #3fb950; }
  .status-value.disconnected { color: #f85149; }
  .clock {
    padding: 24px; margin-bottom: 20px; text-align: center;
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
  }
  .clock .millis { font-size: 2.4em; font-weight: 700; color: #58a6ff; }
  .clock .seconds { font-size: 1.2em; color: #8b949e; margin-top: 6px; }
  .clock .iso { font-size: 0.95em; color: #c9d1d9; margin-top: 6px; }
  .log {
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
    padding: 12px; max-height: 320px; overflow-y: auto; font-size: 0.85em;
  }
  .log div { padding: 2px 0; border-bottom: 1px solid #21262d; }
</style>
</head>
<body>
<h1>Tempo</h1>
<div class="subtitle">Live clock readings</div>
<div class="status-bar">
  <div class="status-item">
    <span class="status-label">Connection</span>
    <span class="status-value disconnected" id="conn">disconnected</span>
  </div>
  <div class="status-item">
    <span class="status-label">Source</span>
    <span class="status-value" id="source">-</span>
  </div>
  <div class="status-item">
    <span class="status-label">Readings</span>
    <span class="status-value" id="count">0</span>
  </div>
</div>
<div class="clock">
  <div class="millis" id="millis">-</div>
  <div class="seconds" id="seconds">-</div>
  <div class="iso" id="iso">-</div>
</div>
<div class="log" id="log"></div>
<script>
let count = 0;
function connect() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onopen = () => {
    const el = document.getElementById("conn");
    el.textContent = "connected";
    el.className = "status-value connected";
  };
  ws.onclose = () => {
    const el = document.getElementById("conn");
    el.textContent = "disconnected";
    el.className = "status-value disconnected";
    setTimeout(connect, 1000);
  };
  ws.onmessage = (ev) => {
    const rd = JSON.parse(ev.data);
    count++;
    document.getElementById("count").textContent = count;
    document.getElementById("source").textContent = rd.source;
    document.getElementById("millis").textContent = rd.millis + " ms";
    document.getElementById("seconds").textContent = rd.seconds + " s";
    document.getElementById("iso").textContent = new Date(rd.millis).toISOString();
    const log = document.getElementById("log");
    const line = document.createElement("div");
    line.textContent = rd.source + "  " + rd.millis + "ms  " + rd.seconds + "s";
    log.prepend(line);
    while (log.childElementCount > 200) log.removeChild(log.lastChild);
  };
}
connect();
</script>
</body>
</html>`
