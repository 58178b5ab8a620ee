package main

// indexHTML takes the page title, the view settings and the samples, in that
// order. Keep literal percent signs out of it.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <script src="https://unpkg.com/zdog@1/dist/zdog.dist.js"></script>
  <style>
    body { font-family: monospace; }
    canvas.toolpath { border: 1px solid #888; cursor: move; }
  </style>
</head>
<body>
  <canvas class="toolpath" width="600" height="600"></canvas>
  <div>
    <button class="pause">pause</button>
    <button class="restart">restart</button>
    speed <select class="speed">
      <option value="0.25">0.25x</option>
      <option value="1" selected>1x</option>
      <option value="4">4x</option>
      <option value="16">16x</option>
    </select>
    <span class="status"></span>
  </div>
  <script>
const view = {
%s
}

const samples = [
%s
]
  </script>
  <script>
const canvas = document.querySelector("canvas.toolpath")
const statusLine = document.querySelector(".status")
const pathColors = {rapid: "#d33", linear: "#393", arc: "#36c"}

const scene = new Zdog.Illustration({
  element: canvas,
  dragRotate: true,
  zoom: view.zoom,
  scale: {y: -1},
  rotate: {x: Zdog.TAU / 6, z: -Zdog.TAU / 20},
})

canvas.addEventListener("wheel", (event) => {
  event.preventDefault()
  scene.zoom = Math.max(view.zoom / 8, scene.zoom * (event.deltaY < 0 ? 1.1 : 0.9))
})

const workspace = new Zdog.Anchor({
  addTo: scene,
  translate: {
    x: -(view.minPos.x + view.maxPos.x) / 2,
    y: -(view.minPos.y + view.maxPos.y) / 2,
    z: -(view.minPos.z + view.maxPos.z) / 2,
  },
})

const axisLength = 1 / view.zoom * 40
for (const [axis, color] of [["x", "#f99"], ["y", "#9c9"], ["z", "#99f"]]) {
  const tip = {x: 0, y: 0, z: 0}
  tip[axis] = axisLength
  new Zdog.Shape({addTo: workspace, path: [{}, tip], stroke: axisLength / 20, color: color})
}

let drawn = new Zdog.Group({addTo: workspace})
const tool = new Zdog.Shape({addTo: workspace, stroke: axisLength / 8, color: "#222"})

let speed = 1
let paused = false
let clock = 0
let cursor = 0
let last = null

function reset() {
  drawn.remove()
  drawn = new Zdog.Group({addTo: workspace})
  clock = 0
  cursor = 0
  if (samples.length > 0) {
    tool.translate.set(samples[0].pt)
  }
}

// Segments join consecutive samples; a new move starts where the last one
// ended, so only its first sample is skipped.
function drawUntil(t) {
  for (; cursor < samples.length && samples[cursor].t <= t; cursor++) {
    const cur = samples[cursor]
    if (cursor > 0 && cur.f > 0) {
      new Zdog.Shape({
        addTo: drawn,
        path: [samples[cursor - 1].pt, cur.pt],
        stroke: axisLength / 60,
        color: pathColors[cur.kind],
      })
    }
    tool.translate.set(cur.pt)
    statusLine.textContent = "N" + cur.line + " " + cur.kind + " " + cur.t.toFixed(2) + "s / " +
      view.duration.toFixed(2) + "s"
  }
}

function frame(now) {
  if (last !== null && !paused) {
    clock += (now - last) / 1000 * speed
  }
  last = now
  drawUntil(clock)
  scene.updateRenderGraph()
  requestAnimationFrame(frame)
}

document.querySelector(".pause").onclick = (event) => {
  paused = !paused
  event.target.textContent = paused ? "resume" : "pause"
}
document.querySelector(".restart").onclick = reset
document.querySelector(".speed").onchange = (event) => {
  speed = parseFloat(event.target.value)
}

reset()
requestAnimationFrame(frame)
  </script>
</body>
</html>
`
