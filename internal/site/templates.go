package site

// pageTemplate is the html/template for the explainer page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <main class="content">
    {{.Content}}
  </main>
  <script src="script.js"></script>
</body>
</html>
`

const cssContent = `:root {
  --text: #1f2328;
  --muted: #57606a;
  --border: #d0d7de;
  --accent: #3A86FF;
  --bg: #ffffff;
  --panel: #f6f8fa;
}

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
}

.content {
  max-width: 1000px;
  margin: 0 auto;
  padding: 2rem 1.5rem 4rem;
}

h1, h2 { line-height: 1.25; }
h2 { border-bottom: 1px solid var(--border); padding-bottom: .3em; margin-top: 2.5rem; }

pre {
  background: var(--panel);
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 1rem;
  overflow-x: auto;
}

.diagram {
  border: 1px solid var(--border);
  border-radius: 8px;
  background: var(--panel);
  margin: 1rem 0;
  min-height: 40px;
  overflow: hidden;
}

.diagram svg { display: block; width: 100%; height: auto; }
.diagram .node { cursor: grab; }
.diagram .link { transition: opacity .2s; }

.controls { display: flex; gap: .5rem; margin: .5rem 0; }

.controls button, .controls select, form button {
  font: inherit;
  padding: .35rem .8rem;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  cursor: pointer;
}

form textarea {
  display: block;
  width: 100%;
  min-height: 6rem;
  margin-bottom: .5rem;
  font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
}

.notice { color: #cf222e; min-height: 1.2em; }
`

const jsContent = `(function() {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws/signals');

  function mount(id) {
    return document.querySelector('[data-mount="' + id + '"]');
  }

  function fill(svgs) {
    Object.keys(svgs || {}).forEach(function(id) {
      var el = mount(id);
      if (el) el.innerHTML = svgs[id];
    });
  }

  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === 'error') {
      console.warn('signal error:', msg.error);
      return;
    }
    fill(msg.svg);
  };

  function send(type, detail) {
    if (ws.readyState !== WebSocket.OPEN) return;
    ws.send(JSON.stringify({type: type, detail: detail || null}));
  }

  document.querySelectorAll('button[data-signal]').forEach(function(btn) {
    btn.addEventListener('click', function() { send(btn.dataset.signal); });
  });

  document.querySelectorAll('select[data-signal]').forEach(function(sel) {
    sel.addEventListener('change', function() {
      var detail = {};
      detail[sel.dataset.detail] = sel.value;
      send(sel.dataset.signal, detail);
    });
  });

  var dragging = null;
  document.addEventListener('mousedown', function(ev) {
    var node = ev.target.closest('[data-mount="architecture-visualization"] .node');
    if (node) dragging = node.getAttribute('data-id');
  });
  document.addEventListener('mouseup', function(ev) {
    if (!dragging) return;
    var svg = mount('architecture-visualization').querySelector('svg');
    var pt = svg.createSVGPoint();
    pt.x = ev.clientX;
    pt.y = ev.clientY;
    var p = pt.matrixTransform(svg.getScreenCTM().inverse());
    send('drag', {id: dragging, x: p.x, y: p.y});
    dragging = null;
  });

  var form = document.getElementById('analysis-form');
  if (form) {
    form.addEventListener('submit', function(ev) {
      ev.preventDefault();
      var notice = document.getElementById('analysis-notice');
      notice.textContent = '';
      fetch('/api/analysis', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({
          organization: form.organization.value,
          groups: form.groups.value,
          applications: form.applications.value
        })
      }).then(function(resp) {
        return resp.json().then(function(body) { return {ok: resp.ok, body: body}; });
      }).then(function(res) {
        if (!res.ok) {
          notice.textContent = res.body.error;
          return;
        }
        var svg = res.body.svg || {};
        fill({
          'current-structure-visualization': svg['current-structure'],
          'proposed-structure-visualization': svg['proposed-structure']
        });
      });
    });
  }
})();
`
