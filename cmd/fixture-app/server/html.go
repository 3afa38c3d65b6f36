package server

import "html/template"

// pageTemplate is the single-page shell served for every UI route. The page
// renders client-side after a configurable delay so that browser tests have
// to wait for content the way they would against the real frontend.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Labels.Lang}}">
<head>
    <meta charset="utf-8">
    <title>{{.Labels.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0;
            background: #f5f5f5;
        }
        .layout { display: flex; min-height: 100vh; }
        nav { width: 240px; background: #263238; color: white; padding: 16px; }
        nav ul { list-style: none; padding: 0; margin: 0; }
        nav li { padding: 8px 0; }
        .nav-item { cursor: pointer; }
        main { flex: 1; padding: 24px; }
        .header { display: flex; align-items: center; justify-content: space-between; }
        form.login { max-width: 320px; margin: 80px auto; background: white; padding: 24px; border-radius: 8px; }
        label { display: block; margin-bottom: 12px; }
        input, textarea { display: block; width: 100%; padding: 8px; box-sizing: border-box; }
        button { background: #4285f4; color: white; border: none; padding: 8px 16px; border-radius: 4px; cursor: pointer; }
        button:disabled { background: #ccc; cursor: not-allowed; }
        .dialog { display: none; position: fixed; inset: 0; background: rgba(0,0,0,0.4); align-items: center; justify-content: center; }
        .dialog.open { display: flex; }
        .dialog form { background: white; padding: 24px; min-width: 400px; border-radius: 8px; }
        .actions { display: flex; justify-content: flex-end; gap: 8px; }
        [role=alert] { color: #d93025; }
    </style>
</head>
<body>
<div id="root"></div>
<script>
(function () {
    'use strict';

    const L = {{.Labels}};
    const DELAY = {{.RenderDelayMs}};
    const root = document.getElementById('root');
    let me = null;

    function h(tag, attrs, ...children) {
        const el = document.createElement(tag);
        for (const [k, v] of Object.entries(attrs || {})) {
            if (k.startsWith('on')) {
                el.addEventListener(k.slice(2), v);
            } else if (v === true) {
                el.setAttribute(k, '');
            } else if (v !== false && v != null) {
                el.setAttribute(k, v);
            }
        }
        for (const c of children) {
            el.append(c);
        }
        return el;
    }

    // later resolves after the render delay, optionally running fn first.
    function later(fn) {
        return new Promise((resolve) => setTimeout(() => {
            if (fn) {
                fn();
            }
            resolve();
        }, DELAY));
    }

    async function api(method, path, body) {
        const res = await fetch(path, {
            method: method,
            credentials: 'same-origin',
            headers: body ? { 'Content-Type': 'application/json' } : {},
            body: body ? JSON.stringify(body) : undefined
        });
        if (!res.ok) {
            const err = new Error(method + ' ' + path + ': ' + res.status);
            err.status = res.status;
            throw err;
        }
        return res.status === 204 ? null : res.json();
    }

    function go(path, replace) {
        if (replace) {
            history.replaceState(null, '', path);
        } else {
            history.pushState(null, '', path);
        }
        route();
    }

    async function route() {
        const path = location.pathname;
        if (path === '/login') {
            renderLogin();
            return;
        }
        if (!me) {
            try {
                me = (await api('GET', '/api/auth/me')).username;
            } catch (err) {
                go('/login', true);
                return;
            }
        }
        if (path === '/campaigns') {
            renderCampaigns();
            return;
        }
        renderHome();
    }

    function renderLogin() {
        root.replaceChildren(h('p', {}, L.loading));
        later(() => {
            const error = h('p', { role: 'alert' });
            const form = h('form', {
                class: 'login',
                onsubmit: async (e) => {
                    e.preventDefault();
                    const data = new FormData(form);
                    try {
                        const res = await api('POST', '/api/auth/login', {
                            username: data.get('username'),
                            password: data.get('password')
                        });
                        me = res.username;
                        go('/');
                    } catch (err) {
                        error.textContent = L.loginFailed;
                    }
                }
            },
                h('h1', {}, L.signIn),
                h('label', {}, L.username, h('input', { name: 'username', type: 'text', autocomplete: 'username' })),
                h('label', {}, L.password, h('input', { name: 'password', type: 'password', autocomplete: 'current-password' })),
                h('button', { type: 'submit' }, L.signIn),
                error);
            root.replaceChildren(form);
        });
    }

    function shell(...content) {
        return h('div', { class: 'layout' },
            h('nav', { 'aria-label': 'sidebar navigation' },
                h('ul', {},
                    h('li', {}, h('span', { class: 'nav-item', onclick: () => go('/campaigns') }, L.campaigns)),
                    h('li', {}, h('span', { class: 'nav-item' }, L.manualsEntry)))),
            h('main', {}, ...content));
    }

    function renderHome() {
        root.replaceChildren(shell(h('p', {}, L.loading)));
        later(() => root.replaceChildren(shell(h('h1', {}, L.welcome + ', ' + me))));
    }

    async function loadCampaigns(list) {
        const campaigns = await api('GET', '/api/campaigns');
        await later();
        if (campaigns.length === 0) {
            list.replaceChildren(h('li', {}, L.noCampaigns));
            return;
        }
        list.replaceChildren(...campaigns.map((c) => h('li', { 'data-id': c.id }, c.name)));
    }

    function renderCampaigns() {
        root.replaceChildren(shell(h('p', {}, L.loading)));
        later(() => {
            const list = h('ul', { id: 'campaign-list' }, h('li', {}, L.loading));
            root.replaceChildren(shell(
                h('div', { class: 'header' },
                    h('h4', {}, L.campaigns),
                    h('button', { type: 'button', onclick: openDialog }, L.newCampaign)),
                list));
            loadCampaigns(list);
        });
    }

    function openDialog() {
        const name = h('input', { type: 'text', required: true });
        const description = h('textarea', { rows: 4, required: true });
        const save = h('button', { type: 'submit', disabled: true }, L.save);
        const error = h('p', { role: 'alert' });
        const sync = () => {
            save.disabled = !(name.value.trim() && description.value.trim());
        };
        name.addEventListener('input', sync);
        description.addEventListener('input', sync);

        const dialog = h('div', { role: 'dialog', 'aria-modal': 'true', class: 'dialog' },
            h('form', {
                onsubmit: async (e) => {
                    e.preventDefault();
                    if (save.disabled) {
                        return;
                    }
                    save.disabled = true;
                    try {
                        await api('POST', '/api/campaigns', {
                            name: name.value,
                            description: description.value
                        });
                        dialog.remove();
                        await loadCampaigns(document.getElementById('campaign-list'));
                    } catch (err) {
                        error.textContent = L.saveFailed;
                        sync();
                    }
                }
            },
                h('h2', {}, L.newCampaign),
                h('label', {}, L.name, name),
                h('label', {}, L.description, description),
                h('div', { class: 'actions' },
                    h('button', { type: 'button', onclick: () => dialog.remove() }, L.cancel),
                    save),
                error));
        document.body.append(dialog);
        later(() => dialog.classList.add('open'));
    }

    window.addEventListener('popstate', route);
    route();
})();
</script>
</body>
</html>
`))

type pageData struct {
	Labels        Labels
	RenderDelayMs int64
}
